package drivers

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// Options wraps a driver config map with typed accessors.
// Values may come from TOML (int64, float64) or JSON (float64), so numeric
// accessors accept either.
type Options map[string]any

// String returns the string at key, or def if absent.
func (o Options) String(key, def string) (string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(key, "string", v)
	}
	return s, nil
}

// Int returns the integer at key, or def if absent.
func (o Options) Int(key string, def int) (int, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, invalid(key, "integer", v)
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, invalid(key, "integer", v)
		}
		return i, nil
	default:
		return 0, invalid(key, "integer", v)
	}
}

// Float returns the number at key, or def if absent.
func (o Options) Float(key string, def float64) (float64, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, invalid(key, "number", v)
	}
}

// Duration returns the duration at key, or def if absent.
// Strings are parsed with time.ParseDuration; bare numbers are seconds.
func (o Options) Duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return def, nil
	}
	if s, ok := v.(string); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, invalid(key, "duration", v)
		}
		return d, nil
	}
	secs, err := o.Float(key, 0)
	if err != nil {
		return 0, invalid(key, "duration", v)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Strings returns the string list at key, or nil if absent.
func (o Options) Strings(key string) ([]string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(key, "list of strings", v)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(key, "list of strings", v)
	}
}

// StringMap returns the string table at key, or nil if absent.
func (o Options) StringMap(key string) (map[string]string, error) {
	v, ok := o[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, item := range m {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(key, "table of strings", v)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, invalid(key, "table of strings", v)
	}
}

// envList flattens an environment table into sorted KEY=VALUE pairs.
func envList(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func invalid(key, want string, got any) error {
	return fmt.Errorf("%w: %s must be a %s, got %T", domain.ErrInvalidInput, key, want, got)
}
