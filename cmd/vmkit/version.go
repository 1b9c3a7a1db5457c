package main

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// buildInfo is what `vmkit version` reports.
type buildInfo struct {
	Version  string
	Commit   string
	Date     string
	Modified bool
}

// resolveBuildInfo fills the fields not set by -ldflags from the module
// build info embedded by `go build` / `go install`.
func resolveBuildInfo(bi *debug.BuildInfo, ok bool) buildInfo {
	info := buildInfo{Version: version, Commit: commit, Date: date}
	if !ok || bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the vmkit version and the commit and toolchain it was built from.`,
		Run: func(cmd *cobra.Command, args []string) {
			info := resolveBuildInfo(debug.ReadBuildInfo())
			if short {
				fmt.Println(info.Version)
				return
			}

			rev := info.Commit
			if info.Modified {
				rev += " (modified)"
			}
			fmt.Println()
			fmt.Printf("  vmkit       %s\n", info.Version)
			fmt.Printf("  Commit:     %s\n", rev)
			fmt.Printf("  Built:      %s\n", info.Date)
			fmt.Printf("  Go version: %s\n", runtime.Version())
			fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			fmt.Println()
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
