package pngink

import (
	"bytes"
	"fmt"
)

// PNG is an in-memory PNG stream: the fixed signature plus an ordered
// sequence of chunks. The sequence keeps decoding/insertion order and
// may contain several chunks of the same type.
//
// A PNG is the sole owner of its chunk sequence. All operations are
// plain in-memory computations, callers requiring concurrent access
// must serialize it externally.
type PNG struct {
	chunks []*Chunk
}

// NewPNG builds a stream directly from a list of chunks.
func NewPNG(chunks ...*Chunk) *PNG {
	png := &PNG{chunks: make([]*Chunk, 0, len(chunks))}
	png.chunks = append(png.chunks, chunks...)
	return png
}

// Parse decodes a complete PNG byte buffer. It verifies the signature
// and then walks the buffer chunk by chunk, framing each with
// NextChunk and validating it with DecodeChunk. Parsing is
// all-or-nothing: any framing shortfall, signature mismatch or chunk
// error fails the whole call and no partial stream is returned.
func Parse(p []byte) (*PNG, error) {
	if len(p) < len(signature) || !bytes.Equal(p[:len(signature)], signature) {
		return nil, ErrSignature
	}

	png := new(PNG)
	for off := len(signature); off < len(p); {
		raw, err := NextChunk(p[off:])
		if err != nil {
			return nil, fmt.Errorf("pngink: chunk %d at offset %d: %w: %w", len(png.chunks), off, ErrTruncated, err)
		}

		chunk, err := DecodeChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("pngink: chunk %d at offset %d: %w", len(png.chunks), off, err)
		}

		png.chunks = append(png.chunks, chunk)
		off += len(raw)
	}
	return png, nil
}

// Bytes serializes the stream back into its wire form: the signature
// followed by each chunk in stored order. A freshly parsed, unmodified
// stream serializes back to the exact input buffer.
func (p *PNG) Bytes() []byte {
	buf := make([]byte, 0, p.size())
	buf = append(buf, signature...)
	for _, c := range p.chunks {
		buf = append(buf, c.Bytes()...)
	}
	return buf
}

func (p *PNG) size() int {
	n := len(signature)
	for _, c := range p.chunks {
		n += frameSize + len(c.data)
	}
	return n
}

// Chunks exposes the current chunk sequence in stored order. The
// returned slice reflects live state and must not be modified.
func (p *PNG) Chunks() []*Chunk { return p.chunks }

// ChunkByType returns the first chunk whose textual type code equals
// typeText, or nil when there is none. Absence is not an error, and a
// typeText that is not a well-formed type code simply never matches.
func (p *PNG) ChunkByType(typeText string) *Chunk {
	for _, c := range p.chunks {
		if c.typ.String() == typeText {
			return c
		}
	}
	return nil
}

// AppendChunk appends a chunk to the end of the sequence. There is no
// uniqueness constraint, several chunks of the same type may coexist.
func (p *PNG) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// RemoveChunk removes the first chunk whose textual type code equals
// typeText and returns it. All remaining chunks, including later ones
// of the same type, keep their relative order. It returns
// ErrChunkNotFound when no chunk matches, so callers can tell
// "removed" apart from "nothing to remove".
func (p *PNG) RemoveChunk(typeText string) (*Chunk, error) {
	for i, c := range p.chunks {
		if c.typ.String() == typeText {
			p.chunks = append(p.chunks[:i], p.chunks[i+1:]...)
			return c, nil
		}
	}
	return nil, ErrChunkNotFound
}
