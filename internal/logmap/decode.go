package logmap

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/agbru/logmap/internal/errors"
)

// Decode classifies a host value by its shape and returns the matching Input:
//
//   - an Input value is returned as is;
//   - []byte becomes RawBytes;
//   - any other slice or array of integer-coercible elements becomes a List;
//   - a map or struct with integer first and last fields becomes a Range
//     (a step field equal to 1 is tolerated);
//   - json.RawMessage is decoded as JSON first (see DecodeJSON).
//
// Anything else, including a list with a single non-integer element, is an
// apperrors.InvalidInputError.
func Decode(v any) (Input, error) {
	switch x := v.(type) {
	case nil:
		return nil, apperrors.NewInvalidInputError("no input")
	case Input:
		return x, nil
	case json.RawMessage:
		return DecodeJSON(x)
	case []byte:
		return RawBytes(x), nil
	case []int64:
		return List(x), nil
	case map[string]any:
		return decodeRangeMap(x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(List, rv.Len())
		for i := range out {
			n, err := toInt64(rv.Index(i).Interface())
			if err != nil {
				return nil, apperrors.InvalidInputError{Reason: fmt.Sprintf("element %d", i), Cause: err}
			}
			out[i] = n
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return decodeRangeMap(m)
	case reflect.Struct:
		return decodeRangeStruct(rv)
	}
	return nil, apperrors.NewInvalidInputError("unsupported shape %T", v)
}

func decodeRangeMap(m map[string]any) (Input, error) {
	first, okFirst := m["first"]
	last, okLast := m["last"]
	if !okFirst || !okLast {
		return nil, apperrors.NewInvalidInputError("map is not a range: needs first and last")
	}
	for k, v := range m {
		switch k {
		case "first", "last":
		case "step":
			if s, err := toInt64(v); err != nil || s != 1 {
				return nil, apperrors.NewInvalidInputError("range step must be 1")
			}
		default:
			return nil, apperrors.NewInvalidInputError("unexpected range key %q", k)
		}
	}
	return rangeOf(first, last)
}

func decodeRangeStruct(rv reflect.Value) (Input, error) {
	f, l := rv.FieldByName("First"), rv.FieldByName("Last")
	if !f.IsValid() || !l.IsValid() || !f.CanInterface() || !l.CanInterface() {
		return nil, apperrors.NewInvalidInputError("struct %s is not a range", rv.Type())
	}
	return rangeOf(f.Interface(), l.Interface())
}

func rangeOf(first, last any) (Input, error) {
	a, err := toInt64(first)
	if err != nil {
		return nil, apperrors.InvalidInputError{Reason: "range first", Cause: err}
	}
	b, err := toInt64(last)
	if err != nil {
		return nil, apperrors.InvalidInputError{Reason: "range last", Cause: err}
	}
	return Range{First: a, Last: b}, nil
}

// toInt64 coerces integer-typed values. Floats, strings and everything else
// are rejected, even when they hold an integral value.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint:
		return uintToInt64(uint64(n))
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return uintToInt64(n)
	case json.Number:
		return strconv.ParseInt(string(n), 10, 64)
	default:
		return 0, fmt.Errorf("%T is not an integer", v)
	}
}

func uintToInt64(n uint64) (int64, error) {
	if n > math.MaxInt64 {
		return 0, strconv.ErrRange
	}
	return int64(n), nil
}

// DecodeJSON decodes a JSON document by shape: an array is a List, an object
// with first/last is a Range, a string is base64-encoded RawBytes.
func DecodeJSON(data []byte) (Input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, apperrors.NewInvalidInputError("empty document")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, apperrors.InvalidInputError{Reason: "byte string", Cause: err}
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, apperrors.InvalidInputError{Reason: "byte string is not base64", Cause: err}
		}
		return RawBytes(b), nil
	case '[':
		var elems []any
		if err := decodeOne(dec, &elems); err != nil {
			return nil, apperrors.InvalidInputError{Reason: "list", Cause: err}
		}
		if elems == nil {
			elems = []any{}
		}
		return Decode(elems)
	case '{':
		var m map[string]any
		if err := decodeOne(dec, &m); err != nil {
			return nil, apperrors.InvalidInputError{Reason: "range", Cause: err}
		}
		return decodeRangeMap(m)
	}
	return nil, apperrors.NewInvalidInputError("JSON value is not a list, range or byte string")
}

// decodeOne decodes a single JSON value and requires the stream to end
// after it.
func decodeOne(dec *json.Decoder, v any) error {
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("trailing data after JSON value at offset %d", dec.InputOffset())
	}
	return nil
}

// ParseText reads the command-line form of an input:
//
//	A..B       inclusive range
//	@path      raw bytes read from a file
//	anything   a JSON document (see DecodeJSON)
func ParseText(s string) (Input, error) {
	s = strings.TrimSpace(s)
	if path, ok := strings.CutPrefix(s, "@"); ok {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.InvalidInputError{Reason: "read " + path, Cause: err}
		}
		return RawBytes(b), nil
	}
	if a, b, ok := strings.Cut(s, ".."); ok && !strings.ContainsAny(s, "[{\"") {
		first, err := strconv.ParseInt(strings.TrimSpace(a), 10, 64)
		if err != nil {
			return nil, apperrors.InvalidInputError{Reason: "range first", Cause: err}
		}
		last, err := strconv.ParseInt(strings.TrimSpace(b), 10, 64)
		if err != nil {
			return nil, apperrors.InvalidInputError{Reason: "range last", Cause: err}
		}
		return Range{First: first, Last: last}, nil
	}
	return DecodeJSON([]byte(s))
}
