package png

import "hash/crc32"

// CRC-32/ISO-HDLC, reflected polynomial 0xEDB88320.
var crcTable = crc32.MakeTable(crc32.IEEE)

// Checksum computes the crc over the concatenation of parts.
func Checksum(parts ...[]byte) uint32 {
	var crc uint32
	for _, p := range parts {
		crc = crc32.Update(crc, crcTable, p)
	}
	return crc
}
