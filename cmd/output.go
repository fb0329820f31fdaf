package cmd

import (
	"os"

	"github.com/cuiweiyuan/explorer/config"
	"github.com/cuiweiyuan/explorer/jsonx"
	"github.com/cuiweiyuan/explorer/ui"
)

// writeJSONOutput writes v to the --json-output file when one is set.
func writeJSONOutput(u ui.UI, v interface{}) {
	if config.JSONOutputFile == "" {
		return
	}
	data, err := jsonx.MarshalIndent(v, "", "  ")
	if err != nil {
		u.Error("Couldn't encode json output: %s", err)
		return
	}
	if err := os.WriteFile(config.JSONOutputFile, data, 0o644); err != nil {
		u.Error("Couldn't write json output to %s: %s", config.JSONOutputFile, err)
		return
	}
	u.Success("Wrote %s", config.JSONOutputFile)
}
