package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	assert.Len(t, s, n*2)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "при...", Truncate("привет", 3))
}

func TestError_KindsAndMessages(t *testing.T) {
	err := NotFound("Event not found")
	assert.True(t, errors.Is(err, ErrorNotFound))
	assert.False(t, errors.Is(err, ErrorInternal))

	msg, ok := Message(err)
	assert.True(t, ok)
	assert.Equal(t, "Event not found", msg)

	_, ok = Message(errors.New("plain"))
	assert.False(t, ok)
}

func TestInternal_WrapsCauseAndKeepsClassified(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("Error creating event", cause)
	assert.True(t, errors.Is(err, ErrorInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "Error creating event: connection reset", err.Error())

	v := Validation("Title is required")
	wrapped := Internal("Error processing chat message", fmt.Errorf("create: %w", v))
	assert.True(t, errors.Is(wrapped, ErrorValidation))
	assert.False(t, errors.Is(wrapped, ErrorInternal))
}
