// FILE: lixenwraith/deephash/param.go
package deephash

// ParamVariant is the variant name carried by Param maps.
const ParamVariant = "param"

// Param is the application settings map: a Map variant that accepts layered
// defaults. A *Param stored inside another Map is kept as a *Param.
type Param struct {
	*Map
}

// NewParam creates a Param from src, ingested as by From.
func NewParam(src any) (*Param, error) {
	m, err := NewVariant(ParamVariant, src)
	if err != nil {
		return nil, err
	}
	return &Param{Map: m}, nil
}

// AsParam recovers a Param from a map carrying the Param variant, such as the
// result of a copy-returning operation on a Param.
func AsParam(m *Map) (*Param, bool) {
	if m == nil || m.variant != ParamVariant {
		return nil, false
	}
	return &Param{Map: m}, true
}

// Defaults deep-merges src into the settings and returns p for chaining.
func (p *Param) Defaults(src any) (*Param, error) {
	if _, err := p.DeepMerge(src); err != nil {
		return nil, err
	}
	return p, nil
}
