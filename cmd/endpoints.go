package cmd

import (
	"fmt"

	"github.com/TwiN/go-color"
	"github.com/joshnies/pocket/config"
	"github.com/joshnies/pocket/lib/console"
	"github.com/joshnies/pocket/lib/endpoints"
	"github.com/urfave/cli/v2"
)

// Print every API endpoint known to the CLI.
func ListEndpoints(c *cli.Context) error {
	console.Info("API host: %s", config.I.API.Host)

	for _, key := range endpoints.Keys() {
		e, err := endpoints.Resolve(key)
		if err != nil {
			return err
		}

		auth := ""
		if e.RequiresAuth {
			auth = color.Ize(color.Yellow, " (auth)")
		}
		fmt.Fprintf(console.Out, "%-16s %s%s\n", key, color.Ize(color.Gray, e.Path), auth)
	}

	return nil
}
