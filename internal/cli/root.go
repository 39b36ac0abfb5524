package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
	"github.com/LinusVanElswijk/mve/internal/scene"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mve",
		Short: "Inspect and maintain MVE scene directories",
		Long: `A CLI tool for working with MVE reconstruction scenes.

A scene directory holds one subdirectory per view plus a bundle file with
the camera calibration and sparse features.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(NewInfoCommand(fs))
	rootCmd.AddCommand(NewViewsCommand(fs))
	rootCmd.AddCommand(NewRenameCommand(fs))
	rootCmd.AddCommand(NewSaveCommand(fs))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs)
	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// openScene creates a scene from the first positional argument, falling
// back to the current directory.
func openScene(fs filesystem.FileSystem, args []string) (*scene.Scene, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cwd, err := fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		path = cwd
	}

	s, err := scene.Create(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}

	return s, nil
}
