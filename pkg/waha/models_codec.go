package waha

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

// None marks an absent parameter, body or response model.
type None struct{}

// Raw is the response type of endpoints without a response model: the
// undecoded body bytes.
type Raw []byte

// Validator is implemented by models that check their own invariants.
type Validator interface {
	Validate() error
}

var (
	noneType = reflect.TypeOf(None{})
	rawType  = reflect.TypeOf(Raw(nil))
)

func isNone[T any]() bool {
	return reflect.TypeOf((*T)(nil)).Elem() == noneType
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// fromDefaults builds a fresh model from a defaults map, keyed by the
// model's JSON field names.
func fromDefaults[T any](defaults map[string]any) (T, error) {
	var out T
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return out, &ValidationError{Model: typeName[T](), Err: err}
	}
	if err := dec.Decode(defaults); err != nil {
		return out, &ValidationError{Model: typeName[T](), Err: err}
	}
	if err := validate(&out); err != nil {
		return out, &ValidationError{Model: typeName[T](), Err: err}
	}
	return out, nil
}

// decodeResponse parses body into T and runs model validation.
func decodeResponse[T any](body []byte) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *Raw:
		*p = Raw(body)
		return out, nil
	case *None:
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &ValidationError{Model: typeName[T](), Err: err}
	}
	if err := validate(&out); err != nil {
		return out, &ValidationError{Model: typeName[T](), Err: err}
	}
	return out, nil
}

// validate calls Validate on v, or on every element when v is a slice.
func validate(v any) error {
	if val, ok := v.(Validator); ok {
		return val.Validate()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Slice && rv.Type() != rawType {
		for i := 0; i < rv.Len(); i++ {
			if err := validate(rv.Index(i).Addr().Interface()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	}
	if rv.CanAddr() {
		if val, ok := rv.Addr().Interface().(Validator); ok {
			return val.Validate()
		}
	}
	if val, ok := rv.Interface().(Validator); ok {
		return val.Validate()
	}
	return nil
}

// queryValues flattens a parameter model into query values using its JSON
// field names. Null and omitted fields produce no value; numbers keep their
// exact encoded digits; nested values are sent as compact JSON.
func queryValues(params any) (map[string]string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("params must encode as a JSON object: %w", err)
	}

	out := make(map[string]string, len(fields))
	for k, v := range fields {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			out[k] = tv
		case bool:
			out[k] = strconv.FormatBool(tv)
		case json.Number:
			out[k] = tv.String()
		default:
			nested, err := json.Marshal(tv)
			if err != nil {
				return nil, fmt.Errorf("marshal param %q: %w", k, err)
			}
			out[k] = string(nested)
		}
	}
	return out, nil
}
