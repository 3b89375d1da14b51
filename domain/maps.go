package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/s0up4200/arrcore/value"
)

// The helpers below read loosely typed payload maps. Missing keys and
// mismatched types fall back to the zero value.

func getString(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func getInt64(m map[string]any, key string) (int64, bool) {
	switch v := m[key].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(math.Round(v)), true
	case float32:
		return int64(math.Round(float64(v))), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if f, err := v.Float64(); err == nil {
			return int64(math.Round(f)), true
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getFloat(m map[string]any, key string) (float64, bool) {
	switch v := m[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f, true
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func getBool(m map[string]any, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func getTimestamp(m map[string]any, key string) *value.Timestamp {
	switch v := m[key].(type) {
	case value.Timestamp:
		return &v
	case string:
		if v == "" {
			return nil
		}
		if ts, err := value.ParseTimestamp(v); err == nil {
			return &ts
		}
	}
	if n, ok := getInt64(m, key); ok && n > 0 {
		ts := value.TimestampFromUnix(n)
		return &ts
	}
	return nil
}

func getOptionalID(m map[string]any, key string) *value.ID {
	if m[key] == nil {
		return nil
	}
	id, err := value.ParseID(m[key])
	if err != nil {
		return nil
	}
	return &id
}

func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func optionalInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
