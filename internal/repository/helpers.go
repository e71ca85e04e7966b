package repository

import (
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordKey returns the key part of a SurrealDB record id ("album:abc" -> "abc").
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case models.RecordID:
		return fmt.Sprint(v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprint(v.ID)
		}
	case string:
		if i := strings.Index(v, ":"); i >= 0 {
			v = v[i+1:]
		}
		return strings.TrimSuffix(strings.TrimPrefix(v, "⟨"), "⟩")
	case map[string]interface{}:
		if key, ok := v["id"]; ok {
			return fmt.Sprint(key)
		}
	}
	return ""
}

// thing builds a record id for use as a query variable.
func thing(table, key string) models.RecordID {
	return models.RecordID{Table: table, ID: key}
}

// resultRows returns the rows of the first statement in a query response.
func resultRows(results []interface{}) []map[string]interface{} {
	if len(results) == 0 {
		return nil
	}

	var rows []interface{}
	switch first := results[0].(type) {
	case map[string]interface{}:
		if data, ok := first["result"].([]interface{}); ok {
			rows = data
		} else if _, ok := first["status"]; !ok {
			rows = results
		}
	default:
		rows = results
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		if m, ok := row.(map[string]interface{}); ok {
			out = append(out, m)
		}
	}
	return out
}

// parseTime parses time from various formats
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) time.Time {
	return parseTime(m[key])
}

// getTimePtr extracts an optional time value from a map
func getTimePtr(m map[string]interface{}, key string) *time.Time {
	t := parseTime(m[key])
	if t.IsZero() {
		return nil
	}
	return &t
}

// getStringSlice extracts a string slice from a map. Missing keys yield an
// empty, non-nil slice.
func getStringSlice(m map[string]interface{}, key string) []string {
	result := []string{}
	switch v := m[key].(type) {
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
	case []string:
		result = append(result, v...)
	}
	return result
}

// getStringMap extracts a string-valued object from a map.
func getStringMap(m map[string]interface{}, key string) map[string]string {
	result := map[string]string{}
	switch v := m[key].(type) {
	case map[string]interface{}:
		for k, item := range v {
			if s, ok := item.(string); ok {
				result[k] = s
			}
		}
	case map[interface{}]interface{}:
		for k, item := range v {
			ks, kok := k.(string)
			s, vok := item.(string)
			if kok && vok {
				result[ks] = s
			}
		}
	case map[string]string:
		for k, s := range v {
			result[k] = s
		}
	}
	return result
}

// emptyIfNil keeps SurrealDB from storing NULL for slices.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
