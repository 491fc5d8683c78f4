package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadU64(t *testing.T) {
	data := AppendU64(nil, 12345678901234)
	offset := 0

	val, err := ReadU64(data, &offset)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345678901234), val)
	assert.Equal(t, 8, offset)
}

func TestReadU64_ShortBuffer(t *testing.T) {
	data := []byte{1, 2, 3}
	offset := 0

	_, err := ReadU64(data, &offset)
	require.Error(t, err)
	assert.Equal(t, 0, offset, "offset must not advance on failure")
}

func TestReadU32_OffsetBeyondBuffer(t *testing.T) {
	data := AppendU32(nil, 7)
	offset := 2

	_, err := ReadU32(data, &offset)
	require.Error(t, err)
	assert.Equal(t, 2, offset)
}

func TestReadString(t *testing.T) {
	data := AppendString(nil, "hello")
	offset := 0

	val, err := ReadString(data, &offset)
	require.NoError(t, err)
	assert.Equal(t, "hello", val)
	assert.Equal(t, 4+5, offset)
}

func TestReadString_LengthExceedsBuffer(t *testing.T) {
	data := AppendU32(nil, 100) // 声称 100 字节，实际没有
	offset := 0

	_, err := ReadString(data, &offset)
	require.Error(t, err)
	assert.Equal(t, 0, offset)
}

func TestReadString_InvalidUTF8(t *testing.T) {
	data := AppendU32(nil, 2)
	data = append(data, 0xff, 0xfe)
	offset := 0

	_, err := ReadString(data, &offset)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "utf-8")
}

func TestReadString_Empty(t *testing.T) {
	data := AppendString(nil, "")
	offset := 0

	val, err := ReadString(data, &offset)
	require.NoError(t, err)
	assert.Equal(t, "", val)
	assert.Equal(t, 4, offset)
}

func TestReadU8_Sequence(t *testing.T) {
	data := []byte{6, 7}
	offset := 0

	first, err := ReadU8(data, &offset)
	require.NoError(t, err)
	second, err := ReadU8(data, &offset)
	require.NoError(t, err)

	assert.Equal(t, uint8(6), first)
	assert.Equal(t, uint8(7), second)

	_, err = ReadU8(data, &offset)
	require.Error(t, err)
}
