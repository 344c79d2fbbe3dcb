package main

import (
	rdebug "runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X main.version=..." for release builds.
var version = ""

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := buildVersion()
		if jsonOut {
			_ = printJSON(info)
			return
		}
		printInfo("cardctl %s\n", info.Version)
		printInfo("  module: %s\n", info.Module)
		printInfo("  cardkit: %s\n", info.Cardkit)
		printInfo("  go: %s\n", info.Go)
		if info.Revision != "" {
			printInfo("  revision: %s\n", info.Revision)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionInfo describes the running binary.
type versionInfo struct {
	Version  string `json:"version"`
	Module   string `json:"module"`
	Cardkit  string `json:"cardkit"`
	Go       string `json:"go"`
	Revision string `json:"revision,omitempty"`
}

const cardkitPath = "github.com/joshuapare/cardkit"

// buildVersion reads the embedded build information. The -X version wins
// over the module version recorded by the go tool.
func buildVersion() versionInfo {
	v := versionInfo{Version: "(devel)", Module: "unknown", Cardkit: "unknown", Go: "unknown"}
	if bi, ok := rdebug.ReadBuildInfo(); ok {
		v.Go = bi.GoVersion
		v.Module = bi.Main.Path
		if bi.Main.Version != "" {
			v.Version = bi.Main.Version
		}
		for _, dep := range bi.Deps {
			if dep.Path != cardkitPath {
				continue
			}
			v.Cardkit = dep.Version
			if dep.Replace != nil {
				v.Cardkit = dep.Replace.Path
			}
		}
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				v.Revision = s.Value
			}
		}
	}
	if version != "" {
		v.Version = version
	}
	return v
}
