package config

import (
	"runtime/debug"

	"github.com/retroenv/retrogolib/log"
)

// Set at build time through -ldflags.
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Version returns the program version, falling back to the module version
// recorded by the go tool.
func Version() string {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			v = info.Main.Version
		}
	}

	if commit != "" {
		c := commit
		if len(c) > 7 {
			c = c[:7]
		}
		v += " (" + c + ")"
	}
	return v
}

// PrintBanner logs the program name and version.
func PrintBanner(logger *log.Logger, name string, quiet bool) {
	if quiet {
		return
	}

	logger.Info(name, log.String("version", Version()))
	if date != "" {
		logger.Info("Build", log.String("date", date))
	}
}
