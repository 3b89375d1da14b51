package value

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrEmptyID is returned for blank string identifiers.
var ErrEmptyID = errors.New("id cannot be an empty string")

// ID is an upstream identifier. The *arr applications use integers,
// download clients often use strings (hashes, nzo ids).
type ID struct {
	num   int64
	str   string
	isStr bool
}

func IntID(n int64) ID {
	return ID{num: n}
}

// StringID rejects blank strings.
func StringID(s string) (ID, error) {
	if strings.TrimSpace(s) == "" {
		return ID{}, ErrEmptyID
	}
	return ID{str: s, isStr: true}, nil
}

// ParseID builds an ID from a decoded JSON value: integers, whole floats,
// json.Number and non-blank strings are accepted.
func ParseID(v any) (ID, error) {
	switch id := v.(type) {
	case ID:
		return id, nil
	case int:
		return IntID(int64(id)), nil
	case int32:
		return IntID(int64(id)), nil
	case int64:
		return IntID(id), nil
	case float64:
		if id != math.Trunc(id) {
			return ID{}, fmt.Errorf("id must be a whole number, got %v", id)
		}
		return IntID(int64(id)), nil
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return IntID(n), nil
		}
		return StringID(id.String())
	case string:
		return StringID(id)
	case nil:
		return ID{}, errors.New("id is missing")
	default:
		return ID{}, fmt.Errorf("unsupported id type %T", v)
	}
}

func (id ID) IsInt() bool    { return !id.isStr }
func (id ID) IsString() bool { return id.isStr }

// Int returns the numeric value; ok is false for string IDs.
func (id ID) Int() (int64, bool) {
	return id.num, !id.isStr
}

// Value returns the underlying int64 or string.
func (id ID) Value() any {
	if id.isStr {
		return id.str
	}
	return id.num
}

func (id ID) String() string {
	if id.isStr {
		return id.str
	}
	return strconv.FormatInt(id.num, 10)
}

// Equal requires the same kind: IntID(1) differs from StringID("1").
func (id ID) Equal(other ID) bool {
	return id == other
}

func (id ID) ToMap() map[string]any {
	return map[string]any{"id": id.Value()}
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Value())
}

func (id *ID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	parsed, err := ParseID(v)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
