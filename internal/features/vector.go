package features

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MissingError reports a required feature absent from the request
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return "Missing feature: " + e.Name
}

// ConversionError reports a feature value that is not a number
type ConversionError struct {
	Name  string
	Value interface{}
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("feature %s: %v", e.Name, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Vector builds the feature vector in the given order. Lookup and
// conversion happen in a single pass, so the first offending feature in
// order decides which error is returned.
func Vector(data map[string]interface{}, order []string) ([]float64, error) {
	vector := make([]float64, 0, len(order))
	for _, name := range order {
		raw, ok := data[name]
		if !ok {
			return nil, &MissingError{Name: name}
		}
		v, err := ToFloat(raw)
		if err != nil {
			return nil, &ConversionError{Name: name, Value: raw, Err: err}
		}
		vector = append(vector, v)
	}
	return vector, nil
}

// ToFloat converts a decoded JSON value to a float64. Numbers pass through,
// numeric strings are parsed and booleans become 1 or 0.
func ToFloat(v interface{}) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Errorf("could not convert %q to a number", val.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to a number: %q", val)
		}
		return f, nil
	case bool:
		if val {
			return 1, nil
		}
		return 0, nil
	case nil:
		return 0, fmt.Errorf("could not convert null to a number")
	default:
		return 0, fmt.Errorf("could not convert %s to a number", jsonKind(v))
	}
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
