// main is the entry point for the teamcap CLI.
package main

import (
	"github.com/huangsam/teamcap/cmd"
	"github.com/huangsam/teamcap/internal/contract"
	"github.com/huangsam/teamcap/internal/runstore"
)

func main() {
	err := cmd.Execute()

	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	runstore.CloseStores()

	if err != nil {
		contract.LogFatal("teamcap failed", err)
	}
}
