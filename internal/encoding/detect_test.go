package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarques/budgeteer/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := encoding.UTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(got)
}

func TestUTF8Reader_Passthrough(t *testing.T) {
	input := `{"transactions":[{"description":"Café com açúcar","amount":4.5}]}`
	assert.Equal(t, input, decode(t, []byte(input)))
}

func TestUTF8Reader_StripsUTF8BOM(t *testing.T) {
	body := `{"settings":{"currency":"EUR"}}`
	input := append([]byte{0xEF, 0xBB, 0xBF}, body...)

	assert.Equal(t, body, decode(t, input))
}

func TestUTF8Reader_Windows1252(t *testing.T) {
	// "Crédit" with é as the single Windows-1252 byte 0xE9.
	input := []byte{'C', 'r', 0xE9, 'd', 'i', 't'}

	assert.Equal(t, "Crédit", decode(t, input))
}

func TestUTF8Reader_UTF16LE(t *testing.T) {
	// "ok" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'o', 0x00, 'k', 0x00}

	assert.Equal(t, "ok", decode(t, input))
}

func TestUTF8Reader_Empty(t *testing.T) {
	assert.Equal(t, "", decode(t, nil))
}
