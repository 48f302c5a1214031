package catalog

// PinType identifies the kind of value a pin carries. Connections are only
// admitted between compatible pin types (see the connect package).
type PinType string

const (
	TypeAddress         PinType = "address"
	TypeAddressList     PinType = "address_list"
	TypeTransaction     PinType = "transaction"
	TypeTransactionList PinType = "transaction_list"
	TypeCredentials     PinType = "credentials"
	TypeData            PinType = "data"
	TypeString          PinType = "string"
	TypeNumber          PinType = "number"
	TypeBoolean         PinType = "boolean"

	// TypeAny matches every other pin type on either side of a connection.
	TypeAny PinType = "any"
)

// Category groups node types in the palette and drives their default styling.
type Category string

const (
	CategoryConfiguration Category = "configuration"
	CategoryInput         Category = "input"
	CategoryQuery         Category = "query"
	CategoryOutput        Category = "output"
)

// Pin is a typed input or output slot on a node type. Pins are immutable once
// their definition has entered the registry.
type Pin struct {
	ID          string  `yaml:"id" json:"id"`
	Label       string  `yaml:"label" json:"label"`
	Type        PinType `yaml:"type" json:"type"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// FieldKind enumerates the form-field kinds a configuration schema may use.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldNumber   FieldKind = "number"
	FieldSelect   FieldKind = "select"
	FieldSecret   FieldKind = "secret"
	FieldColor    FieldKind = "color"
)

// ConfigField describes one typed form field in a node type's configuration
// schema, including the default value new instances start with.
type ConfigField struct {
	ID      string    `yaml:"id" json:"id"`
	Label   string    `yaml:"label" json:"label"`
	Kind    FieldKind `yaml:"kind" json:"kind"`
	Default any       `yaml:"default,omitempty" json:"default,omitempty"`
	Options []string  `yaml:"options,omitempty" json:"options,omitempty"`
}

// Visual carries presentation hints. The engine never interprets these; they
// ride along for whatever renders the canvas.
type Visual struct {
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color string `yaml:"color,omitempty" json:"color,omitempty"`
}

// Definition is a node type: its identity, pins, configuration schema and
// visual metadata. Definitions are never mutated after they enter the
// registry. Label is the single canonical display name.
type Definition struct {
	Type     string        `yaml:"type" json:"type"`
	Label    string        `yaml:"label" json:"label"`
	Category Category      `yaml:"category" json:"category"`
	Provider string        `yaml:"provider,omitempty" json:"provider,omitempty"`
	Inputs   []Pin         `yaml:"inputs,omitempty" json:"inputs,omitempty"`
	Outputs  []Pin         `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Config   []ConfigField `yaml:"config,omitempty" json:"config,omitempty"`
	Visual   Visual        `yaml:"visual,omitempty" json:"visual,omitempty"`
}

// Input returns the input pin with the given id.
func (d *Definition) Input(id string) (Pin, bool) {
	for _, p := range d.Inputs {
		if p.ID == id {
			return p, true
		}
	}
	return Pin{}, false
}

// Output returns the output pin with the given id.
func (d *Definition) Output(id string) (Pin, bool) {
	for _, p := range d.Outputs {
		if p.ID == id {
			return p, true
		}
	}
	return Pin{}, false
}

// ConfigDefaults builds the initial configuration-value map for a new node
// instance, keyed by field id. Fields without a default are omitted.
func (d *Definition) ConfigDefaults() map[string]any {
	values := make(map[string]any, len(d.Config))
	for _, f := range d.Config {
		if f.Default != nil {
			values[f.ID] = f.Default
		}
	}
	return values
}
