package serializer

import "encoding/json"

var _ Codec = NativeCodec{}

// NativeCodec is a Codec using encoding/json
type NativeCodec struct{}

// Marshal implements Codec.Marshal
func (NativeCodec) Marshal(value map[string]interface{}) (string, error) {
	data, err := json.Marshal(value)

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Unmarshal implements Codec.Unmarshal
func (NativeCodec) Unmarshal(data string) (interface{}, error) {
	var value interface{}

	if err := json.Unmarshal([]byte(data), &value); err != nil {
		return nil, err
	}

	return value, nil
}
