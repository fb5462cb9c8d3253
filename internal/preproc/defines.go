package preproc

import "strings"

// defineTable maps case-folded identifiers to an optional value.
type defineTable struct {
	values map[string]*string
}

func newDefineTable() *defineTable {
	return &defineTable{values: make(map[string]*string)}
}

func (d *defineTable) set(name string, value *string) {
	d.values[strings.ToLower(name)] = value
}

func (d *defineTable) unset(name string) {
	delete(d.values, strings.ToLower(name))
}

func (d *defineTable) has(name string) bool {
	_, ok := d.values[strings.ToLower(name)]
	return ok
}

// lookup returns the value of name only when it is defined with a non-empty value.
func (d *defineTable) lookup(name string) (string, bool) {
	v, ok := d.values[strings.ToLower(name)]
	if !ok || v == nil || *v == "" {
		return "", false
	}
	return *v, true
}

func (d *defineTable) snapshot() map[string]*string {
	out := make(map[string]*string, len(d.values))
	for k, v := range d.values {
		if v == nil {
			out[k] = nil
			continue
		}
		val := *v
		out[k] = &val
	}
	return out
}
