package pngink

import "errors"

// The fixed signature that opens every PNG stream.
var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// Chunk data lengths must stay below maxLength, the format reserves
// the high bit of the length field.
const maxLength = 1 << 31

// ErrChunkNotFound is returned when a chunk of the requested type is
// not present in the stream.
var ErrChunkNotFound = errors.New("pngink: chunk not found")

var (
	// ErrSignature is returned when a buffer does not start with the
	// PNG signature.
	ErrSignature = errors.New("pngink: bad signature byte sequence")

	// ErrTruncated is returned when a stream ends in the middle of a
	// chunk.
	ErrTruncated = errors.New("pngink: truncated chunk stream")

	// ErrNotText is returned when chunk data is not valid UTF-8.
	ErrNotText = errors.New("pngink: chunk data is not valid UTF-8")
)
