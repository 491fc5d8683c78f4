package decoder

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
)

// 游标式定长解码原语。每个函数从 *offset 处读取固定宽度，
// 成功时前移游标；越界或编码非法时返回错误且不移动游标。

func ReadU8(data []byte, offset *int) (uint8, error) {
	if *offset+1 > len(data) {
		return 0, fmt.Errorf("read u8 at %d: buffer too short (%d)", *offset, len(data))
	}
	val := data[*offset]
	*offset += 1
	return val, nil
}

func ReadU32(data []byte, offset *int) (uint32, error) {
	if *offset+4 > len(data) {
		return 0, fmt.Errorf("read u32 at %d: buffer too short (%d)", *offset, len(data))
	}
	val := binary.LittleEndian.Uint32(data[*offset : *offset+4])
	*offset += 4
	return val, nil
}

func ReadU64(data []byte, offset *int) (uint64, error) {
	if *offset+8 > len(data) {
		return 0, fmt.Errorf("read u64 at %d: buffer too short (%d)", *offset, len(data))
	}
	val := binary.LittleEndian.Uint64(data[*offset : *offset+8])
	*offset += 8
	return val, nil
}

func ReadPubkey(data []byte, offset *int) (solana.PublicKey, error) {
	if *offset+solana.PublicKeyLength > len(data) {
		return solana.PublicKey{}, fmt.Errorf("read pubkey at %d: buffer too short (%d)", *offset, len(data))
	}
	key := solana.PublicKeyFromBytes(data[*offset : *offset+solana.PublicKeyLength])
	*offset += solana.PublicKeyLength
	return key, nil
}

// ReadString 读取 u32 小端长度前缀 + UTF-8 字节串
func ReadString(data []byte, offset *int) (string, error) {
	start := *offset
	length, err := ReadU32(data, offset)
	if err != nil {
		return "", err
	}
	end := *offset + int(length)
	if end > len(data) || end < *offset {
		*offset = start
		return "", fmt.Errorf("read string at %d: length %d exceeds buffer (%d)", start, length, len(data))
	}
	raw := data[*offset:end]
	if !utf8.Valid(raw) {
		*offset = start
		return "", fmt.Errorf("read string at %d: invalid utf-8", start)
	}
	*offset = end
	return string(raw), nil
}

// 对应的编码原语，测试与 fixture 构造使用同一套布局定义

func AppendU8(buf []byte, val uint8) []byte {
	return append(buf, val)
}

func AppendU32(buf []byte, val uint32) []byte {
	return binary.LittleEndian.AppendUint32(buf, val)
}

func AppendU64(buf []byte, val uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, val)
}

func AppendString(buf []byte, val string) []byte {
	buf = AppendU32(buf, uint32(len(val)))
	return append(buf, val...)
}
