package gamedata

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// BuildSchema reflects a machine-readable JSON schema over the embedded data
// files, for editor tooling and validation of hand-edited definitions.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
	}

	enemies := reflector.Reflect(new(EnemiesFile))
	enemies.Title = "Deepfall Enemies"
	enemies.Description = "Validates enemy kind definitions in enemies.json"

	items := reflector.Reflect(new(ItemsFile))
	items.Title = "Deepfall Items"
	items.Description = "Validates item definitions in items.json"

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Deepfall Game Data",
		Description: "Data files consumed by the deepfall runtime.",
		OneOf:       []*jsonschema.Schema{enemies, items},
	}
	return root
}

// SchemaJSON renders the schema as indented JSON with a trailing newline.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(BuildSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return append(data, '\n'), nil
}
