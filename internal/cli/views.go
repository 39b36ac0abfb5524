package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
)

// ViewsCommand handles the views command
type ViewsCommand struct {
	fs filesystem.FileSystem
}

// NewViewsCommand creates a new views command
func NewViewsCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ViewsCommand{fs: fs}

	return &cobra.Command{
		Use:   "views [scene-dir]",
		Short: "List the views of a scene",
		Args:  cobra.MaximumNArgs(1),
		RunE:  cmd.Run,
	}
}

// Run executes the views command
func (c *ViewsCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := openScene(c.fs, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-6s %-24s %s", "ID", "NAME", "STATE")))

	for _, v := range s.Views() {
		name, err := v.Name()
		if err != nil {
			name = subtleStyle.Render("(unreadable)")
		}

		state := "clean"
		if v.IsDirty() {
			state = dirtyStyle.Render("dirty")
		}

		fmt.Fprintf(out, "%-6d %-24s %s\n", v.ID(), name, state)
	}

	fmt.Fprintln(out, subtleStyle.Render(fmt.Sprintf("%d views", len(s.Views()))))
	return nil
}
