package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("bgcs %s (commit: %s, built: %s, %s)\n", b.Version, b.Commit, b.BuildDate, b.GoVersion)
}

// CurrentBuildInfo reports the ldflags-injected variables.
func CurrentBuildInfo() BuildInfo {
	return BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate, GoVersion: runtime.Version()}
}

// NewVersionCmd prints build information.  It needs no configuration, so
// it replaces the root pre-run.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "version",
		Short:             "Print build information",
		Args:              cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			switch format {
			case OutputJSON:
				return printJSON(cmd, CurrentBuildInfo())
			case OutputYAML:
				return printYAML(cmd, CurrentBuildInfo())
			default:
				return printText(cmd, CurrentBuildInfo())
			}
		},
	}
}

//Personal.AI order the ending
