package pngink

// Table-driven CRC-32 over the reflected polynomial 0xEDB88320, as
// required for PNG chunk checksums. Equivalent to the IEEE table used
// by hash/crc32, kept local so the codec has no behavioural dependency
// on the stdlib table layout.

var crcTable = makeCRCTable()

func makeCRCTable() (table [256]uint32) {
	for i := range table {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 != 0 {
				c = 0xedb88320 ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		table[i] = c
	}
	return
}

// checksum computes the CRC-32 of p with 0xFFFFFFFF as initial value
// and final XOR. Stateless, nothing is retained between calls.
func checksum(p []byte) uint32 {
	crc := ^uint32(0)
	for _, b := range p {
		crc = crcTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}
