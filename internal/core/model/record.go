package model

// Record is one entity from either side of a reconciliation.
// The engine only reads records; results carry their own copies.
type Record struct {
	ID       string           `json:"id" yaml:"id"`
	SourceID string           `json:"source_id" yaml:"source_id"`
	Fields   map[string]Value `json:"fields" yaml:"fields"`
	Metadata map[string]any   `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the named value. A key missing from Fields and an explicit
// null are both reported as absent.
func (r Record) Field(name string) (Value, bool) {
	v, ok := r.Fields[name]
	if !ok || v.IsNull() {
		return Null(), false
	}
	return v, true
}

// Clone returns a copy whose maps are not shared with r.
func (r Record) Clone() Record {
	out := Record{ID: r.ID, SourceID: r.SourceID}
	if r.Fields != nil {
		out.Fields = make(map[string]Value, len(r.Fields))
		for k, v := range r.Fields {
			out.Fields[k] = v
		}
	}
	if r.Metadata != nil {
		out.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Key identifies the record across datasets as "<source_id>:<id>".
func (r Record) Key() string {
	return r.SourceID + ":" + r.ID
}
