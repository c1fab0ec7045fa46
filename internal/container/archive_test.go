package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenOpenRoundTrip(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.WriteDir("docs/"))
	require.NoError(t, w.WritePart("docs/a.txt", []byte("alpha")))
	require.NoError(t, w.WritePart("b.bin", []byte{0x00, 0xFF, 0x10}))

	data, err := w.Bytes()
	require.NoError(t, err)

	arc, err := Open(data)
	require.NoError(t, err)

	got, ok := arc.ReadPart("docs/a.txt")
	require.True(t, ok)
	assert.Equal(t, []byte("alpha"), got)

	got, ok = arc.ReadPart("b.bin")
	require.True(t, ok)
	assert.Equal(t, []byte{0x00, 0xFF, 0x10}, got)

	_, ok = arc.ReadPart("missing.txt")
	assert.False(t, ok)
}

func TestListPartsSorted(t *testing.T) {
	w := NewWriter()
	for _, name := range []string{"z.txt", "a.txt", "m/n.txt"} {
		require.NoError(t, w.WritePart(name, []byte("x")))
	}
	data, err := w.Bytes()
	require.NoError(t, err)

	arc, err := Open(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "m/n.txt", "z.txt"}, arc.ListPartsSorted())
}

func TestOpenRejectsNonZip(t *testing.T) {
	_, err := Open([]byte("plain text, not an archive"))
	assert.Error(t, err)
}
