package ie

import "encoding/binary"

// MaxProtocolOrContainerID bounds the number of (id, length, contents)
// tuples this decoder will accept from a single PCO payload.
const MaxProtocolOrContainerID = 16

// ProtocolOrContainerID is one entry of a PCO payload: a 16-bit id, its
// declared length, and a view into the contents that does not outlive the
// buffer it was parsed from.
type ProtocolOrContainerID struct {
	ID       uint16
	Contents []byte
}

// PCO is Protocol Configuration Options (3GPP TS 24.008 §10.5.6.3), an
// extension/configuration-protocol byte followed by a sequence of
// (id, length, contents) tuples.
type PCO struct {
	Ext                   bool
	ConfigurationProtocol uint8
	IDs                   []ProtocolOrContainerID
}

// ParsePCO decodes a PCO payload. Contents slices alias into b and must
// not be retained past b's lifetime.
func ParsePCO(b []byte) (*PCO, error) {
	if len(b) < 1 {
		return nil, decodeErrorf("PCO", "payload shorter than 1 byte")
	}
	pco := &PCO{
		Ext:                   b[0]&0x80 != 0,
		ConfigurationProtocol: b[0] & 0x07,
	}
	size := 1
	for size < len(b) && len(pco.IDs) < MaxProtocolOrContainerID {
		if size+2 > len(b) {
			return nil, decodeErrorf("PCO", "truncated id field at offset %d", size)
		}
		id := binary.BigEndian.Uint16(b[size:])
		size += 2

		if size+1 > len(b) {
			return nil, decodeErrorf("PCO", "truncated length field at offset %d", size)
		}
		length := int(b[size])
		size++

		if size+length > len(b) {
			return nil, decodeErrorf("PCO", "contents field exceeds remaining bytes at offset %d", size)
		}
		pco.IDs = append(pco.IDs, ProtocolOrContainerID{ID: id, Contents: b[size : size+length]})
		size += length
	}
	if size != len(b) {
		return nil, decodeErrorf("PCO", "residue after decoding: %d of %d bytes consumed", size, len(b))
	}
	return pco, nil
}

// BuildPCO encodes pco into dst, returning the number of bytes written.
func BuildPCO(pco *PCO, dst []byte) (int, error) {
	if len(pco.IDs) > MaxProtocolOrContainerID {
		return 0, decodeErrorf("PCO", "num_of_id %d exceeds max %d", len(pco.IDs), MaxProtocolOrContainerID)
	}
	if len(dst) < 1 {
		return 0, decodeErrorf("PCO", "destination shorter than 1 byte")
	}
	flags := pco.ConfigurationProtocol & 0x07
	if pco.Ext {
		flags |= 0x80
	}
	dst[0] = flags
	size := 1

	for _, id := range pco.IDs {
		if size+2 > len(dst) {
			return 0, decodeErrorf("PCO", "destination too short for id field")
		}
		binary.BigEndian.PutUint16(dst[size:], id.ID)
		size += 2

		if size+1 > len(dst) {
			return 0, decodeErrorf("PCO", "destination too short for length field")
		}
		dst[size] = byte(len(id.Contents))
		size++

		if size+len(id.Contents) > len(dst) {
			return 0, decodeErrorf("PCO", "destination too short for contents")
		}
		copy(dst[size:], id.Contents)
		size += len(id.Contents)
	}
	return size, nil
}
