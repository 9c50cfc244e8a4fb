package amd64

import "encoding/binary"

// AppendLE32 appends v to buf in little-endian order.
func AppendLE32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// AppendLE64 appends v to buf in little-endian order.
func AppendLE64(buf []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(buf, b[:]...)
}

// PatchLE32 overwrites the 4 bytes at buf[offset:] with v, little-endian.
// Used to patch forward-reference displacements once a target is known.
func PatchLE32(buf []byte, offset int, v int32) {
	binary.LittleEndian.PutUint32(buf[offset:], uint32(v))
}
