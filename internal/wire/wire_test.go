package wire

import "testing"

import "github.com/stretchr/testify/assert"

func TestUint40RoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 0xFF, 0x0102030405, 1<<40 - 1}
	for _, c := range cases {
		buf := make([]byte, 5)
		PutUint40(buf, c)
		assert.Equal(t, c, Uint40(buf))
	}
}

func TestUint40PanicsOnOverflow(t *testing.T) {
	assert.Panics(t, func() {
		PutUint40(make([]byte, 5), 1<<40)
	})
}

func TestPutUintNMatchesPutUint40(t *testing.T) {
	a := make([]byte, 5)
	b := make([]byte, 5)
	PutUint40(a, 1_000_000)
	PutUintN(b, 1_000_000, 5)
	assert.Equal(t, a, b)
}

func TestUintNRoundTrip(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03}
	assert.Equal(t, uint64(0x010203), UintN(buf, 3))
}
