package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
)

// SaveCommand handles the save command
type SaveCommand struct {
	fs filesystem.FileSystem

	viewsOnly  bool
	bundleOnly bool
}

// NewSaveCommand creates a new save command
func NewSaveCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &SaveCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "save [scene-dir]",
		Short: "Write unsaved scene state back to disk",
		Long: `Saves the dirty parts of a scene: the bundle, the views, or both.

Note that a freshly opened scene has nothing to save; this command is
mostly useful after scripted mutations through the library.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.viewsOnly, "views-only", false, "save only the views")
	cobraCmd.Flags().BoolVar(&cmd.bundleOnly, "bundle-only", false, "save only the bundle")

	return cobraCmd
}

// Run executes the save command
func (c *SaveCommand) Run(cmd *cobra.Command, args []string) error {
	if c.viewsOnly && c.bundleOnly {
		return fmt.Errorf("--views-only and --bundle-only are mutually exclusive")
	}

	s, err := openScene(c.fs, args)
	if err != nil {
		return err
	}

	switch {
	case c.viewsOnly:
		err = s.SaveViews()
	case c.bundleOnly:
		err = s.SaveBundle()
	default:
		err = s.SaveScene()
	}
	if err != nil {
		return fmt.Errorf("save failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Scene saved"))
	return nil
}
