package domain

// PopulateOption is one reference-expansion instruction. Path names the
// document field that stores the reference and doubles as the output field.
// Zero values fall back to the conventions applied by ApplyDefaults.
type PopulateOption struct {
	Path         string   `bson:"path" json:"path"`
	From         string   `bson:"from,omitempty" json:"from,omitempty"`
	LocalField   string   `bson:"local_field,omitempty" json:"local_field,omitempty"`
	ForeignField string   `bson:"foreign_field,omitempty" json:"foreign_field,omitempty"`
	Select       []string `bson:"select,omitempty" json:"select,omitempty"`
	Single       bool     `bson:"single,omitempty" json:"single,omitempty"`
}

// ApplyDefaults returns a copy with the lookup conventions filled in:
// the foreign collection and local field default to Path, the foreign key
// to "_id".
func (p PopulateOption) ApplyDefaults() PopulateOption {
	if p.From == "" {
		p.From = p.Path
	}
	if p.LocalField == "" {
		p.LocalField = p.Path
	}
	if p.ForeignField == "" {
		p.ForeignField = FieldID
	}
	return p
}

// NormalizePopulate converts the loose populate argument accepted by the
// read operations into a uniform slice. Absent input stays absent, a single
// path string or options value is wrapped into a one-element slice, and an
// existing slice is returned as-is. Anything else yields nil.
func NormalizePopulate(v interface{}) []PopulateOption {
	switch p := v.(type) {
	case nil:
		return nil
	case string:
		return []PopulateOption{{Path: p}}
	case PopulateOption:
		return []PopulateOption{p}
	case *PopulateOption:
		if p == nil {
			return nil
		}
		return []PopulateOption{*p}
	case []PopulateOption:
		return p
	case []string:
		out := make([]PopulateOption, 0, len(p))
		for _, path := range p {
			out = append(out, PopulateOption{Path: path})
		}
		return out
	case []interface{}:
		var out []PopulateOption
		for _, item := range p {
			out = append(out, NormalizePopulate(item)...)
		}
		return out
	default:
		return nil
	}
}
