package main

import (
	"os"

	"cinemahall-cli/cmd"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := cmd.Execute(cmd.BuildInfo{Version: version, Commit: commit}); err != nil {
		os.Exit(1)
	}
}
