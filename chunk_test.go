package pngink_test

import (
	"encoding/binary"
	"errors"
	"hash/crc32"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pngink/pngink"
)

// rawChunk assembles the wire form of a chunk by hand.
func rawChunk(typeText, data string, crc uint32) []byte {
	buf := make([]byte, 0, 12+len(data))
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	buf = append(buf, typeText...)
	buf = append(buf, data...)
	buf = binary.BigEndian.AppendUint32(buf, crc)
	return buf
}

var _ = Describe("Chunk", func() {
	It("should construct, computing length and checksum", func() {
		typ, err := pngink.ParseChunkType("RuSt")
		Expect(err).NotTo(HaveOccurred())

		chunk := pngink.NewChunk(typ, []byte(secretMessage))
		Expect(chunk.Length()).To(Equal(uint32(len(secretMessage))))
		Expect(chunk.Type().String()).To(Equal("RuSt"))
		Expect(chunk.Data()).To(BeEquivalentTo(secretMessage))
		Expect(chunk.CRC()).To(Equal(secretCRC))
	})

	It("should construct from text", func() {
		chunk, err := pngink.NewTextChunk("RuSt", secretMessage)
		Expect(err).NotTo(HaveOccurred())
		Expect(chunk.CRC()).To(Equal(secretCRC))
		Expect(chunk.Text()).To(Equal(secretMessage))

		_, err = pngink.NewTextChunk("Ru", secretMessage)
		Expect(err).To(MatchError("pngink: chunk type must be exactly 4 characters, got 2"))

		_, err = pngink.NewTextChunk("Ru1t", secretMessage)
		var byteErr *pngink.TypeByteError
		Expect(errors.As(err, &byteErr)).To(BeTrue())
	})

	It("should decode the known vector", func() {
		chunk, err := pngink.DecodeChunk(rawChunk("RuSt", secretMessage, secretCRC))
		Expect(err).NotTo(HaveOccurred())
		Expect(chunk.Length()).To(Equal(uint32(42)))
		Expect(chunk.Type().String()).To(Equal("RuSt"))
		Expect(chunk.Text()).To(Equal(secretMessage))
		Expect(chunk.CRC()).To(Equal(secretCRC))
	})

	It("should reject a stored checksum that is off by one", func() {
		_, err := pngink.DecodeChunk(rawChunk("RuSt", secretMessage, secretCRC-1))

		var crcErr *pngink.CRCError
		Expect(errors.As(err, &crcErr)).To(BeTrue())
		Expect(crcErr.Stored).To(Equal(secretCRC - 1))
		Expect(crcErr.Computed).To(Equal(secretCRC))
	})

	It("should detect any single flipped bit under the checksum", func() {
		raw := rawChunk("RuSt", secretMessage, secretCRC)

		// The covered region spans the type and data bytes.
		for pos := 4; pos < len(raw)-4; pos++ {
			for bit := uint(0); bit < 8; bit++ {
				mut := make([]byte, len(raw))
				copy(mut, raw)
				mut[pos] ^= 1 << bit

				_, err := pngink.DecodeChunk(mut)
				var crcErr *pngink.CRCError
				Expect(errors.As(err, &crcErr)).To(BeTrue(), "byte %d bit %d", pos, bit)
			}
		}
	})

	It("should reject invalid type codes after the checksum passes", func() {
		data := "some data"
		raw := make([]byte, 0, 12+len(data))
		raw = binary.BigEndian.AppendUint32(raw, uint32(len(data)))
		raw = append(raw, "Ru1t"...)
		raw = append(raw, data...)

		crc := crc32.ChecksumIEEE(raw[4:])
		raw = binary.BigEndian.AppendUint32(raw, crc)

		_, err := pngink.DecodeChunk(raw)
		Expect(err).To(MatchError(`pngink: invalid chunk type: pngink: chunk type byte '1' at position 2 is not an ASCII letter`))

		var byteErr *pngink.TypeByteError
		Expect(errors.As(err, &byteErr)).To(BeTrue())
		Expect(byteErr.Index).To(Equal(2))
	})

	It("should require the input to be exactly one chunk", func() {
		raw := rawChunk("RuSt", secretMessage, secretCRC)

		_, err := pngink.DecodeChunk(append(raw, "leftover"...))
		Expect(err).To(MatchError("pngink: 8 bytes left over after decoding a chunk"))

		var trailErr *pngink.TrailingBytesError
		Expect(errors.As(err, &trailErr)).To(BeTrue())
		Expect(trailErr.Extra).To(Equal(8))
	})

	It("should reject short buffers", func() {
		_, err := pngink.DecodeChunk(nil)
		Expect(err).To(MatchError("pngink: need at least 12 bytes to frame a chunk, got 0"))

		_, err = pngink.DecodeChunk(rawChunk("RuSt", secretMessage, secretCRC)[:20])
		Expect(err).To(MatchError("pngink: need at least 54 bytes to frame a chunk, got 20"))
	})

	It("should reject lengths beyond the format limit", func() {
		raw := rawChunk("RuSt", secretMessage, secretCRC)
		binary.BigEndian.PutUint32(raw, 1<<31)

		_, err := pngink.DecodeChunk(raw)
		var lenErr *pngink.LengthError
		Expect(errors.As(err, &lenErr)).To(BeTrue())
		Expect(lenErr.Required).To(Equal(uint64(1<<31) + 12))
	})

	It("should round trip through its wire form", func() {
		chunk := mustChunk("teSt", "hello")
		raw := chunk.Bytes()
		Expect(raw).To(HaveLen(12 + 5))

		decoded, err := pngink.DecodeChunk(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(decoded.Length()).To(Equal(chunk.Length()))
		Expect(decoded.Type()).To(Equal(chunk.Type()))
		Expect(decoded.Data()).To(Equal(chunk.Data()))
		Expect(decoded.CRC()).To(Equal(chunk.CRC()))
		Expect(decoded.Bytes()).To(Equal(raw))

		empty := pngink.NewChunk(chunk.Type(), nil)
		Expect(empty.Bytes()).To(HaveLen(12))
		Expect(pngink.DecodeChunk(empty.Bytes())).To(Equal(empty))
	})

	It("should refuse to interpret binary data as text", func() {
		typ, err := pngink.ParseChunkType("binN")
		Expect(err).NotTo(HaveOccurred())

		chunk := pngink.NewChunk(typ, []byte{0xff, 0xfe, 0xfd})
		_, err = chunk.Text()
		Expect(err).To(MatchError(pngink.ErrNotText))
	})

	Describe("NextChunk", func() {
		It("should frame the next chunk without decoding it", func() {
			first := rawChunk("RuSt", secretMessage, secretCRC)
			second := rawChunk("teSt", "hello", 12345) // bogus checksum, framing must not care
			stream := append(append([]byte{}, first...), second...)

			raw, err := pngink.NextChunk(stream)
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(Equal(first))

			raw, err = pngink.NextChunk(stream[len(first):])
			Expect(err).NotTo(HaveOccurred())
			Expect(raw).To(Equal(second))
		})

		It("should reject buffers too short to frame", func() {
			_, err := pngink.NextChunk([]byte{0, 0, 0, 1})
			Expect(err).To(MatchError("pngink: need at least 12 bytes to frame a chunk, got 4"))

			var shortErr *pngink.ShortBufferError
			Expect(errors.As(err, &shortErr)).To(BeTrue())
			Expect(shortErr.Available).To(Equal(4))
			Expect(shortErr.Need).To(Equal(12))
		})

		It("should reject spans beyond the buffer", func() {
			raw := rawChunk("RuSt", secretMessage, secretCRC)
			_, err := pngink.NextChunk(raw[:len(raw)-1])
			Expect(err).To(MatchError("pngink: declared chunk length requires 54 bytes, only 53 available"))

			var lenErr *pngink.LengthError
			Expect(errors.As(err, &lenErr)).To(BeTrue())
			Expect(lenErr.Required).To(Equal(uint64(54)))
			Expect(lenErr.Available).To(Equal(uint64(53)))
		})
	})
})
