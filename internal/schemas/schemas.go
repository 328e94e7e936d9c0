// Package schemas checks decrypted request records against named field sets.
// It returns only the required fields, so handlers never act on keys a
// client smuggled in beside the expected ones.
package schemas

import (
	"fmt"
	"strings"
)

var fields = map[string][]string{
	"loginSchema":          {"role", "regNo", "password"},
	"courseSchema":         {"courseCode", "courseTitle", "courseLevel"},
	"unitSchema":           {"courseCode", "unitCode", "unitTitle", "unitYear"},
	"scheduleSchema":       {"courseCode", "unitCode", "scheduledDate", "scheduledTime"},
	"blockSchema":          {"regNo", "action"},
	"deleteUserSchema":     {"regNo"},
	"commonSchema":         {"courseCode"},
	"deleteUnitSchema":     {"unitCode"},
	"deleteScheduleSchema": {"unitCode"},
	"qrSchema":             {"courseCode", "unitCode", "lecturer", "date", "time"},
	"ledgerSchema":         {"unitCode", "scheduledDate", "scheduledTime"},
	"redeemSchema":         {"qr", "regNo"},
	"refreshSchema":        {"refreshToken"},
}

var registrationFields = map[string][]string{
	"admin":    {"role", "regNo", "nationalId", "fullNames", "password"},
	"lecturer": {"role", "regNo", "password", "nationalId", "fullNames", "courseCode"},
	"student":  {"role", "regNo", "password", "nationalId", "fullNames", "courseCode", "year"},
}

// Validate checks that every field the named schema requires is present and
// non-blank in data, and returns a record containing only those fields.
// The registrationSchema picks its field list by the record's role.
func Validate(schema string, data map[string]any) (map[string]any, error) {
	var keys []string

	if schema == "registrationSchema" {
		role, _ := data["role"].(string)
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			return nil, fmt.Errorf("role is required for registrationSchema")
		}
		regKeys, ok := registrationFields[role]
		if !ok {
			return nil, fmt.Errorf("unsupported registration role: %s", role)
		}
		keys = regKeys
	} else {
		var ok bool
		keys, ok = fields[schema]
		if !ok {
			return nil, fmt.Errorf("unsupported schema: %s", schema)
		}
	}

	for _, key := range keys {
		v, present := data[key]
		if !present || v == nil {
			return nil, fmt.Errorf("%s is required for %s", key, schema)
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			return nil, fmt.Errorf("%s is required for %s", key, schema)
		}
	}

	picked := make(map[string]any, len(keys))
	for _, key := range keys {
		picked[key] = data[key]
	}
	return picked, nil
}

// String returns the named field as a trimmed string; non-string values
// come back empty.
func String(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return strings.TrimSpace(s)
}
