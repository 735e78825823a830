package stdio

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()

	s := NewFrom(inR, outW)

	go func() {
		inW.Write([]byte("hello"))
		inW.Close()
	}()
	buf := make([]byte, 5)
	n, err := io.ReadFull(s, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", string(buf))

	go func() {
		s.Write([]byte("world"))
	}()
	n, err = io.ReadFull(outR, buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "world", string(buf))
}

func TestClose(t *testing.T) {
	inR, _ := io.Pipe()
	_, outW := io.Pipe()

	s := NewFrom(inR, outW)
	require.NoError(t, s.Close())

	_, err := s.Read(make([]byte, 1))
	assert.Error(t, err)
}
