package pngink

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// frameSize is the fixed per-chunk overhead: length field, type code
// and crc trailer.
const frameSize = 12

// Chunk is a single length-prefixed, CRC-trailed record within a PNG
// stream. Chunks are immutable after construction and their crc is
// always the CRC-32 over the type and data bytes.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// ShortBufferError is returned when a buffer is too small to even
// frame a chunk.
type ShortBufferError struct {
	Available int // bytes present
	Need      int // bytes required
}

func (e *ShortBufferError) Error() string {
	return fmt.Sprintf("pngink: need at least %d bytes to frame a chunk, got %d", e.Need, e.Available)
}

// LengthError is returned when a declared chunk length is out of
// range, either because the resulting span exceeds the buffer or
// because it exceeds the 2^31-1 limit imposed by the format.
type LengthError struct {
	Required  uint64 // bytes the declared length calls for
	Available uint64 // bytes actually present
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("pngink: declared chunk length requires %d bytes, only %d available", e.Required, e.Available)
}

// TrailingBytesError is returned by DecodeChunk when the input is
// longer than the single chunk it declares.
type TrailingBytesError struct {
	Extra int // bytes left over
}

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("pngink: %d bytes left over after decoding a chunk", e.Extra)
}

// CRCError is returned when a stored checksum does not match the one
// computed over the chunk's type and data bytes.
type CRCError struct {
	Stored   uint32
	Computed uint32
}

func (e *CRCError) Error() string {
	return fmt.Sprintf("pngink: checksum mismatch, stored 0x%08x, computed 0x%08x", e.Stored, e.Computed)
}

// NewChunk builds a chunk from a type code and a data payload,
// computing length and checksum. The data is copied. The caller must
// ensure len(data) < 2^31, larger payloads are outside the format's
// contract.
func NewChunk(typ ChunkType, data []byte) *Chunk {
	buf := make([]byte, 4+len(data))
	copy(buf[:4], typ[:])
	copy(buf[4:], data)

	return &Chunk{
		length: uint32(len(data)),
		typ:    typ,
		data:   buf[4:],
		crc:    checksum(buf),
	}
}

// NewTextChunk builds a chunk carrying the raw bytes of text under
// the given textual type code.
func NewTextChunk(typeText, text string) (*Chunk, error) {
	typ, err := ParseChunkType(typeText)
	if err != nil {
		return nil, err
	}
	return NewChunk(typ, []byte(text)), nil
}

// NextChunk frames the next chunk at the start of p and returns it as
// a sub-slice of p without decoding it. The span is derived from the
// big-endian length prefix: 4 (length) + 4 (type) + N (data) + 4
// (crc) bytes. This is the primitive used to walk a multi-chunk
// stream one record at a time.
func NextChunk(p []byte) ([]byte, error) {
	if len(p) < frameSize {
		return nil, &ShortBufferError{Available: len(p), Need: frameSize}
	}

	span := uint64(binary.BigEndian.Uint32(p)) + frameSize
	if span > uint64(len(p)) {
		return nil, &LengthError{Required: span, Available: uint64(len(p))}
	}
	return p[:span], nil
}

// DecodeChunk decodes and validates exactly one chunk. The input must
// contain the chunk and nothing else; trailing bytes are an error.
// The stored checksum is verified against one recomputed over the
// type and data bytes, and the data is copied out of p.
func DecodeChunk(p []byte) (*Chunk, error) {
	if len(p) < frameSize {
		return nil, &ShortBufferError{Available: len(p), Need: frameSize}
	}

	length := binary.BigEndian.Uint32(p)
	if uint64(length) >= maxLength {
		return nil, &LengthError{Required: uint64(length) + frameSize, Available: uint64(len(p))}
	}

	span := uint64(length) + frameSize
	if span > uint64(len(p)) {
		return nil, &ShortBufferError{Available: len(p), Need: int(span)}
	}
	if extra := uint64(len(p)) - span; extra > 0 {
		return nil, &TrailingBytesError{Extra: int(extra)}
	}

	// The checksum covers the type and data bytes as stored, letter
	// validation of the type code comes after so that any corruption
	// in the covered region surfaces as a checksum mismatch.
	stored := binary.BigEndian.Uint32(p[8+length:])
	if computed := checksum(p[4 : 8+length]); computed != stored {
		return nil, &CRCError{Stored: stored, Computed: computed}
	}

	typ, err := NewChunkType([4]byte{p[4], p[5], p[6], p[7]})
	if err != nil {
		return nil, fmt.Errorf("pngink: invalid chunk type: %w", err)
	}

	data := make([]byte, length)
	copy(data, p[8:8+length])

	return &Chunk{
		length: length,
		typ:    typ,
		data:   data,
		crc:    stored,
	}, nil
}

// Length returns the length of the chunk's data in bytes.
func (c *Chunk) Length() uint32 { return c.length }

// Type returns the chunk's type code.
func (c *Chunk) Type() ChunkType { return c.typ }

// Data returns the chunk's payload. The slice is shared with the
// chunk and must not be modified.
func (c *Chunk) Data() []byte { return c.data }

// CRC returns the chunk's CRC-32 checksum over type and data.
func (c *Chunk) CRC() uint32 { return c.crc }

// Text interprets the chunk data as UTF-8 text. It returns ErrNotText
// when the payload is not valid UTF-8, there is no lossy replacement.
func (c *Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrNotText
	}
	return string(c.data), nil
}

// Bytes serializes the chunk into its wire form. The output is always
// 12+Length() bytes and DecodeChunk(c.Bytes()) reproduces c exactly.
func (c *Chunk) Bytes() []byte {
	buf := make([]byte, frameSize+len(c.data))
	binary.BigEndian.PutUint32(buf, c.length)
	copy(buf[4:], c.typ[:])
	copy(buf[8:], c.data)
	binary.BigEndian.PutUint32(buf[8+len(c.data):], c.crc)
	return buf
}
