package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_PicksOnlyRequiredFields(t *testing.T) {
	record, err := Validate("qrSchema", map[string]any{
		"courseCode": "bsc-cs",
		"unitCode":   "cs101",
		"lecturer":   "l1",
		"date":       "2024-05-01",
		"time":       "09:00",
		"extra":      "should be dropped",
	})
	require.NoError(t, err)
	assert.NotContains(t, record, "extra")
	assert.Equal(t, "cs101", record["unitCode"])
	assert.Len(t, record, 5)
}

func TestValidate_MissingField(t *testing.T) {
	_, err := Validate("qrSchema", map[string]any{
		"courseCode": "bsc-cs",
		"unitCode":   "cs101",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is required for qrSchema")
}

func TestValidate_BlankStringIsMissing(t *testing.T) {
	_, err := Validate("commonSchema", map[string]any{"courseCode": "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "courseCode is required")
}

func TestValidate_UnsupportedSchema(t *testing.T) {
	_, err := Validate("nopeSchema", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported schema")
}

func TestValidate_RegistrationByRole(t *testing.T) {
	base := map[string]any{
		"role":       "Student",
		"regNo":      "s1",
		"password":   "pw",
		"nationalId": "123",
		"fullNames":  "Some Student",
		"courseCode": "bsc-cs",
		"year":       "2",
	}

	record, err := Validate("registrationSchema", base)
	require.NoError(t, err)
	assert.Contains(t, record, "year")

	// admins do not carry course or year fields
	admin := map[string]any{
		"role":       "Admin",
		"regNo":      "admin2",
		"password":   "pw",
		"nationalId": "123",
		"fullNames":  "Other Admin",
	}
	record, err = Validate("registrationSchema", admin)
	require.NoError(t, err)
	assert.NotContains(t, record, "year")
	assert.NotContains(t, record, "courseCode")
}

func TestValidate_RegistrationUnknownRole(t *testing.T) {
	_, err := Validate("registrationSchema", map[string]any{"role": "janitor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported registration role")
}

func TestString(t *testing.T) {
	m := map[string]any{"a": "  x  ", "b": 7}
	assert.Equal(t, "x", String(m, "a"))
	assert.Equal(t, "", String(m, "b"))
	assert.Equal(t, "", String(m, "missing"))
}
