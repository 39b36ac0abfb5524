package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
	"github.com/LinusVanElswijk/mve/internal/scene"
	"github.com/LinusVanElswijk/mve/internal/view"
)

// RenameCommand handles the rename command
type RenameCommand struct {
	fs filesystem.FileSystem

	id   int
	name string
}

// NewRenameCommand creates a new rename command
func NewRenameCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &RenameCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "rename [scene-dir]",
		Short: "Rename a view and save it",
		Long: `Renames a single view and writes its metadata file back to disk.

Without --id and --name an interactive picker is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().IntVar(&cmd.id, "id", view.InvalidID, "id of the view to rename")
	cobraCmd.Flags().StringVar(&cmd.name, "name", "", "new view name")

	return cobraCmd
}

// Run executes the rename command
func (c *RenameCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := openScene(c.fs, args)
	if err != nil {
		return err
	}

	target, name := c.id, c.name
	if target == view.InvalidID || name == "" {
		target, name, err = c.promptRename(s)
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
	}

	var selected *view.View
	for _, v := range s.Views() {
		if v.ID() == target {
			selected = v
			break
		}
	}
	if selected == nil {
		return fmt.Errorf("no view with id %d in scene %s", target, s.Path())
	}

	selected.SetName(name)
	if err := selected.Save(); err != nil {
		return fmt.Errorf("failed to save view %d: %w", target, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(),
		successStyle.Render(fmt.Sprintf("Renamed view %d to %q", target, name)))
	return nil
}

// promptRename runs the interactive picker for the view and its new name.
func (c *RenameCommand) promptRename(s *scene.Scene) (int, string, error) {
	options := make([]huh.Option[int], 0, len(s.Views()))
	for _, v := range s.Views() {
		label := fmt.Sprintf("view %d", v.ID())
		if name, err := v.Name(); err == nil && name != "" {
			label = fmt.Sprintf("view %d (%s)", v.ID(), name)
		}
		options = append(options, huh.NewOption(label, v.ID()))
	}

	var target int
	var name string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which view should be renamed?").
				Options(options...).
				Value(&target),
			huh.NewInput().
				Title("New name").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("name must not be empty")
					}
					return nil
				}).
				Value(&name),
		),
	)

	if err := form.Run(); err != nil {
		return view.InvalidID, "", err
	}

	return target, name, nil
}
