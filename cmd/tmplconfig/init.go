package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"tmplconfig/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a tmplconfig.toml with the default settings",
	Long: `Create tmplconfig.toml in [dir] (the current directory by default). The
directory is created if it does not exist. An existing project file is never
overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path, err := initProject(dir)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s\n", displayPath(path))
		return nil
	},
}

// initProject writes the default project file into dir and returns its path.
func initProject(dir string) (string, error) {
	target := absPath(dir)
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return "", fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return "", fmt.Errorf("%q is not a directory", target)
	}

	path := filepath.Join(target, config.FileName)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("project already initialized: %s exists", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return "", err
	}
	return path, nil
}
