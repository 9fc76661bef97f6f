package ie

import "github.com/your-org/pfcp-core/internal/wire"

// BearerQoSLen is the fixed wire length of a Bearer QoS payload
// (3GPP TS 29.274 §8.15).
const BearerQoSLen = 22

// BearerQoS is 3GPP Bearer Quality of Service.
type BearerQoS struct {
	PCI bool
	PL  uint8
	PVI bool
	QCI uint8
	ULMBR uint64
	DLMBR uint64
	ULGBR uint64
	DLGBR uint64
}

// ParseBearerQoS decodes a fixed-length Bearer QoS payload.
func ParseBearerQoS(b []byte) (*BearerQoS, error) {
	if len(b) != BearerQoSLen {
		return nil, decodeErrorf("BearerQoS", "payload length %d, want %d", len(b), BearerQoSLen)
	}
	q := &BearerQoS{
		PCI: b[0]&0x40 != 0,
		PL:  (b[0] >> 2) & 0x0F,
		PVI: b[0]&0x01 != 0,
		QCI: b[1],
	}
	size := 2
	q.ULMBR = wire.Uint40(b[size:])
	size += 5
	q.DLMBR = wire.Uint40(b[size:])
	size += 5
	q.ULGBR = wire.Uint40(b[size:])
	size += 5
	q.DLGBR = wire.Uint40(b[size:])
	size += 5
	return q, nil
}

// BuildBearerQoS encodes q into a fresh BearerQoSLen-byte payload.
func BuildBearerQoS(q *BearerQoS) []byte {
	b := make([]byte, BearerQoSLen)
	b[0] = (q.PL & 0x0F) << 2
	if q.PCI {
		b[0] |= 0x40
	}
	if q.PVI {
		b[0] |= 0x01
	}
	b[1] = q.QCI
	size := 2
	wire.PutUint40(b[size:], q.ULMBR)
	size += 5
	wire.PutUint40(b[size:], q.DLMBR)
	size += 5
	wire.PutUint40(b[size:], q.ULGBR)
	size += 5
	wire.PutUint40(b[size:], q.DLGBR)
	size += 5
	return b
}
