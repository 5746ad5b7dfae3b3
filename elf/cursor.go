package elf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Cursor extracts fixed-width integers from an in-memory buffer.  A failed
// read never advances the position, which keeps alternative-trying and
// truncation reporting non-destructive.
type Cursor struct {
	binary.ByteOrder

	Content  []byte
	Position int
}

func NewCursor(
	byteOrder binary.ByteOrder,
	content []byte,
) *Cursor {
	return &Cursor{
		ByteOrder: byteOrder,
		Content:   content,
		Position:  0,
	}
}

func (cursor *Cursor) Clone() *Cursor {
	return &Cursor{
		ByteOrder: cursor.ByteOrder,
		Content:   cursor.Content,
		Position:  cursor.Position,
	}
}

func (cursor *Cursor) remaining() []byte {
	return cursor.Content[cursor.Position:]
}

func (cursor *Cursor) NumRemaining() int {
	return len(cursor.remaining())
}

func (cursor *Cursor) HasReachedEnd() bool {
	return len(cursor.remaining()) == 0
}

func (cursor *Cursor) Seek(offset int, whence int) (int, error) {
	pos := 0
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = cursor.Position + offset
	case io.SeekEnd:
		pos = len(cursor.Content) + offset
	}

	if pos < 0 || len(cursor.Content) < pos {
		return 0, fmt.Errorf("out of bound seek (%d): %w", pos, ErrTruncated)
	}

	cursor.Position = pos
	return pos, nil
}

func (cursor *Cursor) Bytes(size int) ([]byte, error) {
	content := cursor.remaining()
	if size < 0 || len(content) < size {
		return nil, fmt.Errorf(
			"out of bound slice %d [%d:%d+%d]: %w",
			len(content),
			cursor.Position,
			cursor.Position,
			size,
			ErrTruncated)
	}

	content = content[:size]
	cursor.Position += size
	return content, nil
}

// ExpectBytes consumes the literal if the next bytes match it exactly.  On
// mismatch, including insufficient remaining bytes, the position is left
// untouched.
func (cursor *Cursor) ExpectBytes(expected []byte) bool {
	content := cursor.remaining()
	if len(content) < len(expected) {
		return false
	}

	if !bytes.Equal(content[:len(expected)], expected) {
		return false
	}

	cursor.Position += len(expected)
	return true
}

func (cursor *Cursor) U8() (uint8, error) {
	content, err := cursor.Bytes(1)
	if err != nil {
		return 0, err
	}

	return content[0], nil
}

func (cursor *Cursor) U16() (uint16, error) {
	content, err := cursor.Bytes(2)
	if err != nil {
		return 0, err
	}

	return cursor.ByteOrder.Uint16(content), nil
}

func (cursor *Cursor) U32() (uint32, error) {
	content, err := cursor.Bytes(4)
	if err != nil {
		return 0, err
	}

	return cursor.ByteOrder.Uint32(content), nil
}

func (cursor *Cursor) U64() (uint64, error) {
	content, err := cursor.Bytes(8)
	if err != nil {
		return 0, err
	}

	return cursor.ByteOrder.Uint64(content), nil
}

// Addr reads an address-width value, 4 bytes for Class32 and 8 bytes for
// Class64, widened to uint64.
func (cursor *Cursor) Addr(class Class) (uint64, error) {
	switch class {
	case Class32:
		value, err := cursor.U32()
		return uint64(value), err
	case Class64:
		return cursor.U64()
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedClass, class)
	}
}
