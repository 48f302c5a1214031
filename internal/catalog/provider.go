package catalog

import (
	"context"
)

// ProviderDefinition is the wire shape external providers supply node types
// in. It is normalized into a Definition before entering the registry.
type ProviderDefinition struct {
	Type          string        `json:"type"`
	Name          string        `json:"name,omitempty"`
	Category      string        `json:"category"`
	Provider      string        `json:"provider"`
	Description   string        `json:"description,omitempty"`
	Inputs        []Pin         `json:"inputs,omitempty"`
	Outputs       []Pin         `json:"outputs,omitempty"`
	Configuration []ConfigField `json:"configuration,omitempty"`
	Visual        Visual        `json:"visual,omitempty"`
}

// Source supplies provider definitions, e.g. from an HTTP endpoint or a
// directory of definition files.
type Source interface {
	Definitions(ctx context.Context) ([]ProviderDefinition, error)
}

// Normalize converts provider definitions into registry shape. Entries with
// an empty type id are dropped; unrecognized categories map to query.
func Normalize(provided []ProviderDefinition) []Definition {
	defs := make([]Definition, 0, len(provided))
	for _, p := range provided {
		if p.Type == "" {
			continue
		}
		label := p.Name
		if label == "" {
			label = p.Type
		}
		defs = append(defs, Definition{
			Type:     p.Type,
			Label:    label,
			Category: normalizeCategory(p.Category),
			Provider: p.Provider,
			Inputs:   p.Inputs,
			Outputs:  p.Outputs,
			Config:   p.Configuration,
			Visual:   p.Visual,
		})
	}
	return defs
}

func normalizeCategory(raw string) Category {
	switch Category(raw) {
	case CategoryConfiguration, CategoryInput, CategoryQuery, CategoryOutput:
		return Category(raw)
	default:
		return CategoryQuery
	}
}
