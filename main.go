// main is the entry point of the tcscore CLI.
package main

import (
	"github.com/huangsam/tcscore/cmd"
	"github.com/huangsam/tcscore/internal/contract"
	"github.com/huangsam/tcscore/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)
	err := cmd.Execute()

	// LogFatal exits, so release stores and profiles first
	iocache.CloseStores()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Cannot stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot run tcscore", err)
	}
}
