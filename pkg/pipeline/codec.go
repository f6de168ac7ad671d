package pipeline

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// encode serializes cached values. Types without msgpack tags fall back to
// their json tags, so design types keep their camelCase names.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}
