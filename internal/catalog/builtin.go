package catalog

import (
	_ "embed"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed builtin.yaml
var builtinYAML []byte

// BuiltinDefinitions parses the embedded static catalog. The result is the
// first registration pass of every registry; provider definitions are merged
// on top of it.
func BuiltinDefinitions() ([]Definition, error) {
	var defs []Definition
	if err := yaml.Unmarshal(builtinYAML, &defs); err != nil {
		return nil, errors.Wrap(err, "failed to parse built-in catalog")
	}
	return defs, nil
}
