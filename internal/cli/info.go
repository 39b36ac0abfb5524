package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
	"github.com/LinusVanElswijk/mve/internal/report"
)

// InfoCommand handles the info command
type InfoCommand struct {
	fs filesystem.FileSystem
}

// NewInfoCommand creates a new info command
func NewInfoCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &InfoCommand{fs: fs}

	return &cobra.Command{
		Use:   "info [scene-dir]",
		Short: "Show a summary of a scene",
		Long: `Shows a summary report of a scene directory: its views, the bundle
contents, and whether anything has unsaved changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}
}

// Run executes the info command
func (c *InfoCommand) Run(cmd *cobra.Command, args []string) error {
	s, err := openScene(c.fs, args)
	if err != nil {
		return err
	}

	rendered, err := report.Render(report.Collect(s))
	if err != nil {
		return fmt.Errorf("failed to render scene report: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
