package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tmplconfig/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show tmplconfig build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch strings.ToLower(versionFormat) {
		case "pretty":
			fmt.Fprint(cmd.OutOrStdout(), version.Describe(!color.NoColor))
			return nil
		case "json":
			return renderVersionJSON(cmd.OutOrStdout())
		}
		return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
	},
}

func renderVersionJSON(out io.Writer) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(versionPayload{
		Tool:      "tmplconfig",
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	})
}
