package types

// HeaderField is one named header with one or more values. A field with
// several values is written as one metadata line per value.
type HeaderField struct {
	Name   string
	Values []string
}

// Headers is an ordered collection of header fields. Order is preserved
// through Save so the metadata file reads the way the caller built it.
type Headers []HeaderField

// Add appends a field to the header list. Adding the same name twice
// produces two fields; both are written.
func (h *Headers) Add(name string, values ...string) {
	*h = append(*h, HeaderField{Name: name, Values: values})
}

// Get returns the values of the first field with the given name, or nil.
func (h Headers) Get(name string) []string {
	for _, f := range h {
		if f.Name == name {
			return f.Values
		}
	}
	return nil
}

// Fields is the result of a Get: lowercased header names mapped to a
// string (single-valued) or []string (repeated), plus any content keys
// merged in when the body was requested.
type Fields map[string]any
