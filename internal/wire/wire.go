// Package wire holds the byte-order conventions shared by the IE codecs
// and message builders. Every multi-byte integer on the wire is
// big-endian; 16/32/64-bit fields use encoding/binary directly, and this
// package adds the 40-bit helper 3GPP Bearer QoS needs.
package wire

import "fmt"

// PutUint40 writes v big-endian into the first 5 bytes of dst, zero-padded
// on the left. It panics if v does not fit in 40 bits or dst is too short,
// mirroring the programming-error-is-a-panic convention used for the rest
// of this core's invariant violations.
func PutUint40(dst []byte, v uint64) {
	if v >= 1<<40 {
		panic(fmt.Sprintf("wire: value %d does not fit in 40 bits", v))
	}
	if len(dst) < 5 {
		panic("wire: PutUint40 destination shorter than 5 bytes")
	}
	dst[0] = byte(v >> 32)
	dst[1] = byte(v >> 24)
	dst[2] = byte(v >> 16)
	dst[3] = byte(v >> 8)
	dst[4] = byte(v)
}

// Uint40 is the inverse of PutUint40.
func Uint40(src []byte) uint64 {
	if len(src) < 5 {
		panic("wire: Uint40 source shorter than 5 bytes")
	}
	return uint64(src[0])<<32 | uint64(src[1])<<24 | uint64(src[2])<<16 | uint64(src[3])<<8 | uint64(src[4])
}

// PutUintN writes v big-endian into the first n bytes of dst, n in [1,8],
// zero-padded on the left. It is the general form of PutUint40 used by
// codecs whose field width is not fixed at compile time (none in this
// package today; kept for IE builders that size fields from a TLV length).
func PutUintN(dst []byte, v uint64, n int) {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("wire: n_bytes %d out of range [1,8]", n))
	}
	if len(dst) < n {
		panic("wire: PutUintN destination shorter than n bytes")
	}
	for i := 0; i < n; i++ {
		dst[n-1-i] = byte(v >> (8 * uint(i)))
	}
}

// UintN is the inverse of PutUintN.
func UintN(src []byte, n int) uint64 {
	if n < 1 || n > 8 {
		panic(fmt.Sprintf("wire: n_bytes %d out of range [1,8]", n))
	}
	if len(src) < n {
		panic("wire: UintN source shorter than n bytes")
	}
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(src[i])
	}
	return v
}
