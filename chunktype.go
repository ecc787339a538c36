package pngink

import "fmt"

// ChunkType is a 4-letter ASCII code labelling a chunk's purpose.
// Upper-case and lower-case letters are distinct types: "RuSt" and
// "Rust" name different chunks. The case of each letter doubles as a
// property bit, see the Is* predicates.
//
// A ChunkType can only be obtained through ParseChunkType or
// NewChunkType, both of which reject non-letter bytes, so every
// instance in circulation is valid by construction.
type ChunkType [4]byte

// TypeLengthError is returned when a textual chunk type is not
// exactly 4 characters long.
type TypeLengthError struct {
	Length int // the actual character count
}

func (e *TypeLengthError) Error() string {
	return fmt.Sprintf("pngink: chunk type must be exactly 4 characters, got %d", e.Length)
}

// TypeByteError is returned when a chunk type contains a byte outside
// A-Z/a-z. It reports the first offending byte only.
type TypeByteError struct {
	Index int  // position of the offending byte, 0-3
	Byte  byte // the offending byte
}

func (e *TypeByteError) Error() string {
	return fmt.Sprintf("pngink: chunk type byte %q at position %d is not an ASCII letter", e.Byte, e.Index)
}

// ParseChunkType parses a 4-character string into a ChunkType.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &TypeLengthError{Length: len(s)}
	}
	return NewChunkType([4]byte{s[0], s[1], s[2], s[3]})
}

// NewChunkType validates 4 raw bytes as a ChunkType.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, &TypeByteError{Index: i, Byte: c}
		}
	}
	return ChunkType(b), nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Bytes returns the raw 4 bytes of the type code.
func (t ChunkType) Bytes() [4]byte { return t }

// String renders the type code as text. Types consist of ASCII
// letters only, so the rendering is lossless.
func (t ChunkType) String() string { return string(t[:]) }

// IsCritical reports whether the chunk is critical to the display of
// the image. Encoded as an upper-case first letter.
func (t ChunkType) IsCritical() bool { return t[0]&0x20 == 0 }

// IsPublic reports whether the chunk type is publicly registered.
// Encoded as an upper-case second letter.
func (t ChunkType) IsPublic() bool { return t[1]&0x20 == 0 }

// ReservedBitSet reports whether the reserved bit is set, i.e. the
// third letter is lower-case. Current PNG revisions expect the bit to
// be clear, the codec itself attaches no meaning to it.
func (t ChunkType) ReservedBitSet() bool { return t[2]&0x20 != 0 }

// IsSafeToCopy reports whether editors that do not recognise the
// chunk may carry it over unchanged. Encoded as a lower-case fourth
// letter.
func (t ChunkType) IsSafeToCopy() bool { return t[3]&0x20 != 0 }
