/*
Package pngink is a chunk-level codec for the PNG container format.

It parses a PNG byte stream into an ordered sequence of typed,
CRC-32-checked chunks, supports looking chunks up, appending and
removing them by type, and serializes the sequence back to a
byte-exact stream. Its primary use is embedding and extracting
arbitrary custom chunks (for example hidden text) without touching
the image data itself; pixel payloads are carried around as opaque
bytes and never decompressed.

Data Structure Documentation

Stream

A stream starts with the fixed 8-byte PNG signature, followed by a
series of chunks.

    Stream layout:
    +-----------+---------+---------+---------+
    | signature | chunk 1 |   ...   | chunk n |
    +-----------+---------+---------+---------+

    Signature:
    +------+-----+-----+-----+------+------+------+------+
    | 0x89 | 'P' | 'N' | 'G' | 0x0D | 0x0A | 0x1A | 0x0A |
    +------+-----+-----+-----+------+------+------+------+

Chunk

A chunk is a length-prefixed record trailed by a CRC-32 checksum over
its type and data bytes.

    Chunk layout:
    +---------------------+----------------+-----------+------------------+
    | data length N       | type           | data      | crc              |
    | (4 bytes, BE, <2^31)| (4 ASCII chars)| (N bytes) | (4 bytes, BE)    |
    +---------------------+----------------+-----------+------------------+

The checksum uses the reflected polynomial 0xEDB88320 with 0xFFFFFFFF
as both the initial value and the final XOR, as defined by the PNG
specification, and covers the type and data bytes only.

Chunk Type

The case of each of the four type letters encodes a property bit
(bit 5 of the byte): ancillary/critical, private/public, the reserved
bit, and safe-to-copy. Properties are derived from the raw bytes on
every call and never stored separately.
*/
package pngink
