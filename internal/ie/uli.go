package ie

import "encoding/binary"

// CGI is a Cell Global Identity: PLMN + Location Area Code + Cell Identity.
type CGI struct {
	PLMN [3]byte
	LAC  uint16
	CI   uint16
}

// SAI is a Service Area Identity: PLMN + Location Area Code + Service Area Code.
type SAI struct {
	PLMN [3]byte
	LAC  uint16
	SAC  uint16
}

// RAI is a Routing Area Identity: PLMN + Location Area Code + Routing Area Code.
type RAI struct {
	PLMN [3]byte
	LAC  uint16
	RAC  uint16
}

// TAI is a Tracking Area Identity: PLMN + Tracking Area Code.
type TAI struct {
	PLMN [3]byte
	TAC  uint16
}

// ECGI is an E-UTRAN Cell Global Identity: PLMN + E-UTRAN Cell Identity.
type ECGI struct {
	PLMN [3]byte
	ECI  uint32
}

// LAI is a Location Area Identity: PLMN + Location Area Code.
type LAI struct {
	PLMN [3]byte
	LAC  uint16
}

// ULIFlags gates which of the six optional sub-fields are present.
type ULIFlags struct {
	CGI  bool
	SAI  bool
	RAI  bool
	TAI  bool
	ECGI bool
	LAI  bool
}

// ULI is User Location Information (3GPP TS 29.274 §8.21): a flag byte
// followed, in fixed order CGI/SAI/RAI/TAI/ECGI/LAI, by any subset of
// sub-IEs whose flag is set.
type ULI struct {
	Flags ULIFlags
	CGI   CGI
	SAI   SAI
	RAI   RAI
	TAI   TAI
	ECGI  ECGI
	LAI   LAI
}

func parseFlags(b byte) ULIFlags {
	return ULIFlags{
		CGI:  b&0x01 != 0,
		SAI:  b&0x02 != 0,
		RAI:  b&0x04 != 0,
		TAI:  b&0x08 != 0,
		ECGI: b&0x10 != 0,
		LAI:  b&0x20 != 0,
	}
}

func buildFlags(f ULIFlags) byte {
	var b byte
	if f.CGI {
		b |= 0x01
	}
	if f.SAI {
		b |= 0x02
	}
	if f.RAI {
		b |= 0x04
	}
	if f.TAI {
		b |= 0x08
	}
	if f.ECGI {
		b |= 0x10
	}
	if f.LAI {
		b |= 0x20
	}
	return b
}

// ParseULI decodes a ULI payload.
func ParseULI(b []byte) (*ULI, error) {
	if len(b) < 1 {
		return nil, decodeErrorf("ULI", "payload shorter than 1 byte")
	}
	u := &ULI{Flags: parseFlags(b[0])}
	size := 1

	need := func(n int) error {
		if size+n > len(b) {
			return decodeErrorf("ULI", "truncated sub-field at offset %d", size)
		}
		return nil
	}

	if u.Flags.CGI {
		if err := need(7); err != nil {
			return nil, err
		}
		copy(u.CGI.PLMN[:], b[size:size+3])
		u.CGI.LAC = binary.BigEndian.Uint16(b[size+3:])
		u.CGI.CI = binary.BigEndian.Uint16(b[size+5:])
		size += 7
	}
	if u.Flags.SAI {
		if err := need(7); err != nil {
			return nil, err
		}
		copy(u.SAI.PLMN[:], b[size:size+3])
		u.SAI.LAC = binary.BigEndian.Uint16(b[size+3:])
		u.SAI.SAC = binary.BigEndian.Uint16(b[size+5:])
		size += 7
	}
	if u.Flags.RAI {
		if err := need(7); err != nil {
			return nil, err
		}
		copy(u.RAI.PLMN[:], b[size:size+3])
		u.RAI.LAC = binary.BigEndian.Uint16(b[size+3:])
		u.RAI.RAC = binary.BigEndian.Uint16(b[size+5:])
		size += 7
	}
	if u.Flags.TAI {
		if err := need(5); err != nil {
			return nil, err
		}
		copy(u.TAI.PLMN[:], b[size:size+3])
		u.TAI.TAC = binary.BigEndian.Uint16(b[size+3:])
		size += 5
	}
	if u.Flags.ECGI {
		if err := need(7); err != nil {
			return nil, err
		}
		copy(u.ECGI.PLMN[:], b[size:size+3])
		u.ECGI.ECI = binary.BigEndian.Uint32(b[size+3:])
		size += 7
	}
	if u.Flags.LAI {
		if err := need(5); err != nil {
			return nil, err
		}
		copy(u.LAI.PLMN[:], b[size:size+3])
		u.LAI.LAC = binary.BigEndian.Uint16(b[size+3:])
		size += 5
	}

	if size != len(b) {
		return nil, decodeErrorf("ULI", "residue after decoding: %d of %d bytes consumed", size, len(b))
	}
	return u, nil
}

// BuildULI encodes u, emitting only the sub-fields named by u.Flags, in
// fixed order CGI/SAI/RAI/TAI/ECGI/LAI.
func BuildULI(u *ULI) []byte {
	size := 1
	if u.Flags.CGI {
		size += 7
	}
	if u.Flags.SAI {
		size += 7
	}
	if u.Flags.RAI {
		size += 7
	}
	if u.Flags.TAI {
		size += 5
	}
	if u.Flags.ECGI {
		size += 7
	}
	if u.Flags.LAI {
		size += 5
	}

	b := make([]byte, size)
	b[0] = buildFlags(u.Flags)
	off := 1

	if u.Flags.CGI {
		copy(b[off:], u.CGI.PLMN[:])
		binary.BigEndian.PutUint16(b[off+3:], u.CGI.LAC)
		binary.BigEndian.PutUint16(b[off+5:], u.CGI.CI)
		off += 7
	}
	if u.Flags.SAI {
		copy(b[off:], u.SAI.PLMN[:])
		binary.BigEndian.PutUint16(b[off+3:], u.SAI.LAC)
		binary.BigEndian.PutUint16(b[off+5:], u.SAI.SAC)
		off += 7
	}
	if u.Flags.RAI {
		copy(b[off:], u.RAI.PLMN[:])
		binary.BigEndian.PutUint16(b[off+3:], u.RAI.LAC)
		binary.BigEndian.PutUint16(b[off+5:], u.RAI.RAC)
		off += 7
	}
	if u.Flags.TAI {
		copy(b[off:], u.TAI.PLMN[:])
		binary.BigEndian.PutUint16(b[off+3:], u.TAI.TAC)
		off += 5
	}
	if u.Flags.ECGI {
		copy(b[off:], u.ECGI.PLMN[:])
		binary.BigEndian.PutUint32(b[off+3:], u.ECGI.ECI)
		off += 7
	}
	if u.Flags.LAI {
		copy(b[off:], u.LAI.PLMN[:])
		binary.BigEndian.PutUint16(b[off+3:], u.LAI.LAC)
		off += 5
	}
	return b
}
