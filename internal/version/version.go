package version

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Version information for the tmplconfig CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.3.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Anything after the patch number is left as is.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// Tool identifies the producer in snapshots and generated banners.
func Tool() string {
	return "tmplconfig " + Version
}

// Describe returns the full multi-line version text.
func Describe(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "tmplconfig %s\n", v)
	if GitCommit != "" {
		fmt.Fprintf(&b, "commit: %s\n", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&b, "built:  %s\n", BuildDate)
	}
	return b.String()
}
