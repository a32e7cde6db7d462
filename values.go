package formskema

import (
	"bytes"

	json "github.com/goccy/go-json"
)

// Values is the raw form data: field name to arbitrary value. Owned by the
// caller's reactive cell; the engine only reads it.
type Values map[string]any

// ValuesFromJSON decodes a JSON object into Values. Numbers are kept as
// json.Number so downstream schema parsing decides their representation.
func ValuesFromJSON(data []byte) (Values, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v Values
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
