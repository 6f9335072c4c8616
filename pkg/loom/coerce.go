package loom

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"time"
)

// stringify renders an interpolation result as attribute/text content.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case *regexp.Regexp:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceText decides whether a non-node interpolation value renders as
// text, and produces that text. Functions, booleans, numbers, times and
// patterns stringify; nil produces nothing; anything else (maps,
// structs, channels) is not renderable and is silently dropped.
func coerceText(v any) (string, bool) {
	switch v.(type) {
	case nil:
		return "", false
	case string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64,
		time.Time, *regexp.Regexp:
		return stringify(v), true
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return stringify(v), true
	}
	return "", false
}
