package serializer

import (
	"fmt"
	"sync"

	"github.com/dop251/goja"
)

// GojaLoader returns a Loader for a codec that runs JSON.stringify
// and JSON.parse inside an embedded JavaScript runtime. If script is
// not empty it is evaluated first, so a JSON polyfill can install or
// replace the global JSON object.
func GojaLoader(script string) Loader {
	return func() (Codec, error) {
		vm := goja.New()

		if script != "" {
			if _, err := vm.RunString(script); err != nil {
				return nil, fmt.Errorf("could not evaluate JSON script: %w", err)
			}
		}

		global := vm.Get("JSON")

		if global == nil || goja.IsUndefined(global) || goja.IsNull(global) {
			return nil, fmt.Errorf("script runtime has no JSON object")
		}

		object := global.ToObject(vm)
		stringify, ok := goja.AssertFunction(object.Get("stringify"))

		if !ok {
			return nil, fmt.Errorf("JSON.stringify is not a function")
		}

		parse, ok := goja.AssertFunction(object.Get("parse"))

		if !ok {
			return nil, fmt.Errorf("JSON.parse is not a function")
		}

		return &gojaCodec{vm: vm, stringify: stringify, parse: parse}, nil
	}
}

type gojaCodec struct {
	mu        sync.Mutex
	vm        *goja.Runtime
	stringify goja.Callable
	parse     goja.Callable
}

func (codec *gojaCodec) Marshal(value map[string]interface{}) (string, error) {
	codec.mu.Lock()
	defer codec.mu.Unlock()

	result, err := codec.stringify(goja.Undefined(), codec.vm.ToValue(value))

	if err != nil {
		return "", err
	}

	if goja.IsUndefined(result) {
		return "", fmt.Errorf("value is not serializable")
	}

	return result.String(), nil
}

func (codec *gojaCodec) Unmarshal(data string) (interface{}, error) {
	codec.mu.Lock()
	defer codec.mu.Unlock()

	result, err := codec.parse(goja.Undefined(), codec.vm.ToValue(data))

	if err != nil {
		return nil, err
	}

	return normalize(result.Export()), nil
}

// normalize makes exported numbers float64, the way
// encoding/json decodes them
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case int64:
		return float64(v)
	case map[string]interface{}:
		for key, inner := range v {
			v[key] = normalize(inner)
		}

		return v
	case []interface{}:
		for i, inner := range v {
			v[i] = normalize(inner)
		}

		return v
	default:
		return value
	}
}
