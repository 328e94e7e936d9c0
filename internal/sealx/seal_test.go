package sealx

import (
	"testing"

	"github.com/dgitonga/qrollcall/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox_EmptySecret(t *testing.T) {
	_, err := NewBox("")
	require.ErrorIs(t, err, common.ErrConfiguration)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	type payload struct {
		CourseCode string `json:"courseCode"`
		UnitCode   string `json:"unitCode"`
		Year       int    `json:"year"`
	}

	in := payload{CourseCode: "bsc-cs", UnitCode: "cs101", Year: 2}

	sealed, err := box.Seal(in)
	require.NoError(t, err)
	require.NotEmpty(t, sealed)

	var out payload
	require.NoError(t, box.Open(sealed, &out))
	assert.Equal(t, in, out)
}

func TestSeal_NonDeterministic(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	a, err := box.Seal("same value")
	require.NoError(t, err)
	b, err := box.Seal("same value")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "each seal must use a fresh nonce")
}

func TestOpen_Garbage(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	var out map[string]any
	for _, input := range []string{
		"garbage",
		"",
		"!!!not base64!!!",
		"AAAA", // decodes but is far too short
	} {
		err := box.Open(input, &out)
		assert.ErrorIs(t, err, common.ErrDecryption, "input %q", input)
	}
}

func TestOpen_Tampered(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	sealed, err := box.Seal(map[string]string{"regNo": "s1"})
	require.NoError(t, err)

	tampered := []byte(sealed)
	tampered[len(tampered)-1] ^= 1

	var out map[string]any
	assert.ErrorIs(t, box.Open(string(tampered), &out), common.ErrDecryption)
}

func TestOpen_WrongSecret(t *testing.T) {
	a, err := NewBox("secret-a")
	require.NoError(t, err)
	b, err := NewBox("secret-b")
	require.NoError(t, err)

	sealed, err := a.Seal("hello")
	require.NoError(t, err)

	var out string
	assert.ErrorIs(t, b.Open(sealed, &out), common.ErrDecryption)
}

func TestOpen_DoubleWrap(t *testing.T) {
	box, err := NewBox("test-secret")
	require.NoError(t, err)

	inner, err := box.Seal(map[string]string{"unitCode": "cs101"})
	require.NoError(t, err)
	outer, err := box.Seal(map[string]string{"qr": inner, "regNo": "s1"})
	require.NoError(t, err)

	var envelope map[string]string
	require.NoError(t, box.Open(outer, &envelope))

	var claims map[string]string
	require.NoError(t, box.Open(envelope["qr"], &claims))
	assert.Equal(t, "cs101", claims["unitCode"])
}
