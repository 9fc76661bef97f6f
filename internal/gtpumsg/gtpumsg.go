// Package gtpumsg builds the GTP-U v1 messages this core is responsible
// for: Echo Request/Response and Error Indication. Message dispatch and
// the UDP socket are collaborators; this package only emits bytes.
package gtpumsg

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// GTP-U v1 message types (3GPP TS 29.281).
const (
	MsgTypeEchoRequest     = 1
	MsgTypeEchoResponse    = 2
	MsgTypeErrorIndication = 26
)

// TLV types used by the messages this package builds.
const (
	ieRecovery             = 14
	ieSendingNodeFeatures  = 151
	ieTEIDDataI            = 16
	ieGTPUPeerAddress      = 133
)

const (
	pduTypeDLPDUSessionInformation = 0x00
	noMoreExtensionHeaders         = 0x00
)

// BuildEchoRequest builds a GTP-U v1 Echo Request: recovery counter and
// sending-node-features bitmap, both marked present.
func BuildEchoRequest(recovery uint8, sendingNodeFeatures uint8) []byte {
	return buildEcho(MsgTypeEchoRequest, recovery, sendingNodeFeatures)
}

// BuildEchoResponse builds a GTP-U v1 Echo Response with the same body
// shape as a request.
func BuildEchoResponse(recovery uint8, sendingNodeFeatures uint8) []byte {
	return buildEcho(MsgTypeEchoResponse, recovery, sendingNodeFeatures)
}

func buildEcho(msgType uint8, recovery uint8, sendingNodeFeatures uint8) []byte {
	body := make([]byte, 0, 6)
	body = append(body, ieRecovery, recovery)
	body = append(body, ieSendingNodeFeatures, sendingNodeFeatures)

	msg := make([]byte, 8+len(body))
	msg[0] = 0x30 // version 1, PT=1, E=0, S=0, PN=0
	msg[1] = msgType
	binary.BigEndian.PutUint16(msg[2:4], uint16(len(body)))
	// teid (bytes 4:8) is zero for Echo, no S/SEID in GTP-U header
	copy(msg[8:], body)
	return msg
}

// BuildErrorIndication builds a GTP-U v1 Error Indication, selecting the
// QFI==0 or QFI!=0 wire shape per spec §4.C/§6. addr must be a valid
// IPv4 or IPv6 address; an invalid or unspecified address is a
// programming error in the caller, not a runtime condition, and panics.
func BuildErrorIndication(teid uint32, addr netip.Addr, qfi uint8) []byte {
	peer, err := peerAddressBytes(addr)
	if err != nil {
		panic(fmt.Sprintf("gtpumsg: BuildErrorIndication: %v", err))
	}

	tlvBody := make([]byte, 0, 4+1+2+len(peer))
	// TLV 16: Tunnel Endpoint Identifier Data I
	tlvBody = append(tlvBody, ieTEIDDataI)
	teidBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(teidBuf, teid)
	tlvBody = append(tlvBody, teidBuf...)
	// TLV 133: GTP-U Peer Address
	tlvBody = append(tlvBody, ieGTPUPeerAddress)
	lenBuf := make([]byte, 2)
	binary.BigEndian.PutUint16(lenBuf, uint16(len(peer)))
	tlvBody = append(tlvBody, lenBuf...)
	tlvBody = append(tlvBody, peer...)

	var header []byte
	if qfi == 0 {
		header = make([]byte, 8)
		header[0] = 0x30
		header[1] = MsgTypeErrorIndication
		binary.BigEndian.PutUint16(header[2:4], uint16(len(tlvBody)))
		binary.BigEndian.PutUint32(header[4:8], teid)
	} else {
		header = make([]byte, 12)
		header[0] = 0x34 // version 1, PT=1, E=1
		header[1] = MsgTypeErrorIndication
		// length covers everything after the first 8 octets: the 4
		// optional-field bytes already in this 12-byte header (seq,
		// npdu, next-ext-type) plus the 4-byte extension header plus
		// the TLV body.
		binary.BigEndian.PutUint16(header[2:4], uint16(8+len(tlvBody)))
		binary.BigEndian.PutUint32(header[4:8], teid)
		// bytes 8:10 are sequence number (0, unused by error indication)
		header[10] = 0 // NPDU number, unused
		// extension header: len=1 (in 4-octet units), pdu_type, qfi, next=0
		header[11] = 0x85 // next extension header type: PDU Session Container
		ext := []byte{1, pduTypeDLPDUSessionInformation, qfi, noMoreExtensionHeaders}
		header = append(header, ext...)
	}

	msg := make([]byte, 0, len(header)+len(tlvBody))
	msg = append(msg, header...)
	msg = append(msg, tlvBody...)
	return msg
}

func peerAddressBytes(addr netip.Addr) ([]byte, error) {
	switch {
	case addr.Is4():
		b := addr.As4()
		return b[:], nil
	case addr.Is6():
		b := addr.As16()
		return b[:], nil
	default:
		return nil, fmt.Errorf("unknown address family for %v", addr)
	}
}

// ErrorIndicationFARKey is the (teid, peer-address-bytes) pair recovered
// from a received Error Indication, ready to compose into the FAR
// variable-length hash key (spec §4.F).
type ErrorIndicationFARKey struct {
	TEID     uint32
	PeerAddr []byte
}

// ParseErrorIndicationFARKey extracts the TLV-16 TEID and TLV-133 peer
// address from a received Error Indication's TLV body (header already
// stripped by the caller, per spec §4.F: "parse a received GTP-U Error
// Indication (type 16 TLV + type 133 TLV)").
func ParseErrorIndicationFARKey(tlvBody []byte) (*ErrorIndicationFARKey, error) {
	var key ErrorIndicationFARKey
	haveTEID := false
	haveAddr := false

	off := 0
	for off < len(tlvBody) {
		if off+1 > len(tlvBody) {
			return nil, fmt.Errorf("gtpumsg: truncated TLV type at offset %d", off)
		}
		tlvType := tlvBody[off]
		off++

		switch tlvType {
		case ieTEIDDataI:
			if off+4 > len(tlvBody) {
				return nil, fmt.Errorf("gtpumsg: truncated TLV-16 at offset %d", off)
			}
			key.TEID = binary.BigEndian.Uint32(tlvBody[off:])
			off += 4
			haveTEID = true
		case ieGTPUPeerAddress:
			if off+2 > len(tlvBody) {
				return nil, fmt.Errorf("gtpumsg: truncated TLV-133 length at offset %d", off)
			}
			length := int(binary.BigEndian.Uint16(tlvBody[off:]))
			off += 2
			if length != 4 && length != 16 {
				return nil, fmt.Errorf("gtpumsg: TLV-133 length %d is neither 4 nor 16", length)
			}
			if off+length > len(tlvBody) {
				return nil, fmt.Errorf("gtpumsg: truncated TLV-133 value at offset %d", off)
			}
			key.PeerAddr = append([]byte(nil), tlvBody[off:off+length]...)
			off += length
			haveAddr = true
		default:
			return nil, fmt.Errorf("gtpumsg: unexpected TLV type %d at offset %d", tlvType, off-1)
		}
	}

	if !haveTEID || !haveAddr {
		return nil, fmt.Errorf("gtpumsg: error indication missing required TLV")
	}
	return &key, nil
}
