package catalog

import (
	"strings"

	"github.com/tmc/langchaingo/tools"
)

// FromTools synthesizes provider definitions from tool-style API
// descriptions. Each tool becomes a query node taking optional credentials
// and a required query string, emitting structured data.
func FromTools(provider string, ts []tools.Tool) []ProviderDefinition {
	defs := make([]ProviderDefinition, 0, len(ts))
	for _, t := range ts {
		name := t.Name()
		if name == "" {
			continue
		}
		defs = append(defs, ProviderDefinition{
			Type:        toolTypeID(provider, name),
			Name:        name,
			Category:    string(CategoryQuery),
			Provider:    provider,
			Description: t.Description(),
			Inputs: []Pin{
				{ID: "credentials", Label: "Credentials", Type: TypeCredentials},
				{ID: "query", Label: "Query", Type: TypeString, Required: true, Description: t.Description()},
			},
			Outputs: []Pin{
				{ID: "result", Label: "Result", Type: TypeData},
			},
		})
	}
	return defs
}

func toolTypeID(provider, name string) string {
	id := strings.ToLower(provider + "_" + name)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "-", "_")
	return id
}
