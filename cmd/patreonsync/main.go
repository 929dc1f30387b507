// Command patreonsync writes the patrons of the most expensive tiers of the
// authenticated creator's campaign to a json file.
//
// It is meant to run once per invocation from a scheduler, for example a
// daily CI job:
//
//	PATREON_ACCESS_TOKEN=... patreonsync -o subscribers.json
//
// Exit codes: 0 on success or when the account has no campaign, 1 when the
// sync failed and 2 on configuration errors.
package main

import (
	"os"

	"github.com/StikStore/stikstore.github.io/common/run"
)

func main() {
	run.Init()
	os.Exit(run.Run())
}
