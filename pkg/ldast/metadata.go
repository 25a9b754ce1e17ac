package ldast

// Value is a typed front-matter value. The set of implementations is closed:
// StringValue, IntValue, FloatValue, BoolValue, and ListValue.
type Value interface {
	valueNode()
}

// StringValue is a plain or quoted string value.
type StringValue string

// IntValue is an integer value.
type IntValue int64

// FloatValue is a floating-point value.
type FloatValue float64

// BoolValue is a true/false value.
type BoolValue bool

// ListValue is a bracketed, comma-separated sequence of values.
type ListValue []Value

func (StringValue) valueNode() {}
func (IntValue) valueNode()    {}
func (FloatValue) valueNode()  {}
func (BoolValue) valueNode()   {}
func (ListValue) valueNode()   {}

// Entry is a single front-matter key/value pair in source order.
type Entry struct {
	Key   string
	Value Value
	Span  Span
}

// Metadata is the parsed front-matter mapping. Entries preserve source
// order; lookups are by key, last writer wins for duplicate keys.
type Metadata struct {
	Entries []Entry
	Span    Span
}

// Len returns the number of entries.
func (m *Metadata) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Entries)
}

// Has reports whether the key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Get returns the value for the key and whether it was present.
func (m *Metadata) Get(key string) (Value, bool) {
	if m == nil {
		return nil, false
	}
	for i := len(m.Entries) - 1; i >= 0; i-- {
		if m.Entries[i].Key == key {
			return m.Entries[i].Value, true
		}
	}
	return nil, false
}

// GetOr returns the value for the key, or def when absent.
func (m *Metadata) GetOr(key string, def Value) Value {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Keys returns the entry keys in source order.
func (m *Metadata) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m.Entries))
	for _, e := range m.Entries {
		keys = append(keys, e.Key)
	}
	return keys
}
