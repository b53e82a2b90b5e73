package beancountchile

// Metadata is an ordered set of beancount metadata key/value lines.
// Insertion order is preserved so that rendered entries are reproducible.
// Its zero value is ready to use.
type Metadata struct {
	keys   []string
	values map[string]string
}

// Set records a key/value pair. Setting an existing key overrides its
// value but keeps its original position.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it is present.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of keys.
func (m *Metadata) Len() int { return len(m.keys) }

// Keys returns the keys in insertion order. The returned slice is shared,
// callers must not modify it.
func (m *Metadata) Keys() []string { return m.keys }

func (m Metadata) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, k := range m.keys {
		w.Append(k, m.values[k])
	}
	return w.MarshalJSON()
}
