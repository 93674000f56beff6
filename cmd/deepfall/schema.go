package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samdwyer/deepfall/internal/gamedata"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Emit the game data JSON schema",
	Long: `Print the JSON schema describing enemies.json and items.json, for
editor validation when tweaking game data.

Examples:
  deepfall schema > gamedata.schema.json`,
	Run: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) {
	out, err := gamedata.SchemaJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building schema: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
