package murmur

import (
	"encoding/binary"
	"unsafe"
)

const (
	m = 0xc6a4a7935bd1e995
	r = 47
)

// NinjaSeed is the seed ninja uses for its build log. Commands hashed with it
// can be compared against a log written by ninja itself.
const NinjaSeed uint64 = 0xdecafbaddecafbad

// Sum64 returns the MurmurHash64A digest of data with seed 0.
func Sum64(data []byte) uint64 {
	return Sum64Seed(data, 0)
}

// Sum64String is Sum64 over the bytes of s without copying them.
func Sum64String(s string) uint64 {
	return Sum64(unsafe.Slice(unsafe.StringData(s), len(s)))
}

// Sum64Seed returns the MurmurHash64A digest of data with the given seed.
func Sum64Seed(data []byte, seed uint64) uint64 {
	h := seed ^ uint64(len(data))*m

	for len(data) >= 8 {
		k := binary.LittleEndian.Uint64(data)
		k *= m
		k ^= k >> r
		k *= m

		h ^= k
		h *= m
		data = data[8:]
	}

	// Tail bytes, highest first.
	switch len(data) {
	case 7:
		h ^= uint64(data[6]) << 48
		fallthrough
	case 6:
		h ^= uint64(data[5]) << 40
		fallthrough
	case 5:
		h ^= uint64(data[4]) << 32
		fallthrough
	case 4:
		h ^= uint64(data[3]) << 24
		fallthrough
	case 3:
		h ^= uint64(data[2]) << 16
		fallthrough
	case 2:
		h ^= uint64(data[1]) << 8
		fallthrough
	case 1:
		h ^= uint64(data[0])
		h *= m
	}

	h ^= h >> r
	h *= m
	h ^= h >> r
	return h
}
