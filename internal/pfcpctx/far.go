package pfcpctx

import "net/netip"

// ApplyAction is a FAR's forwarding action.
type ApplyAction uint8

const (
	ApplyActionDrop ApplyAction = iota
	ApplyActionForward
	ApplyActionBuffer
	ApplyActionNotifyCP
	ApplyActionDuplicate
)

// maxBufferedPackets bounds the ring FAR.BufferedPackets grows to while
// ApplyAction is Buffer.
const maxBufferedPackets = 32

// OuterHeaderCreation describes GTP-U encapsulation applied when
// forwarding: a TEID plus the peer address/port to send to.
type OuterHeaderCreation struct {
	TEID uint32
	Addr netip.Addr
	Port uint16
}

// FAR is a Forwarding Action Rule (3GPP TS 29.244 clause 5.2.3).
// ApplyAction defaults to Forward when a FAR is created via find-or-add.
type FAR struct {
	ID                  int
	ApplyAction         ApplyAction
	OuterHeaderCreation *OuterHeaderCreation
	BufferedPackets     [][]byte

	sess      *Sess
	hashKey   []byte
	hashIsSet bool
}

func farAdd(s *Sess) (*FAR, error) {
	id, ok := s.farPool.alloc()
	if !ok {
		return nil, &ResourceExhaustion{Kind: "far", SEID: s.SEID}
	}
	f := &FAR{ID: id, ApplyAction: ApplyActionForward, sess: s}
	s.fars[id] = f
	return f, nil
}

func farFind(s *Sess, id int) *FAR {
	return s.fars[id]
}

func farFindOrAdd(s *Sess, id int) (*FAR, error) {
	if f := farFind(s, id); f != nil {
		return f, nil
	}
	return farAdd(s)
}

// farBufferPacket appends pkt to f's buffered-packet ring, dropping the
// oldest entry once the ring is full.
func farBufferPacket(f *FAR, pkt []byte) {
	if len(f.BufferedPackets) >= maxBufferedPackets {
		f.BufferedPackets = f.BufferedPackets[1:]
	}
	f.BufferedPackets = append(f.BufferedPackets, pkt)
}

// farRemove deletes f: unpublishes its FAR-hash entry, clears any PDR's
// dangling reference to it (reverse-lookup-then-null),
// frees buffered packets, and releases its id.
func farRemove(f *FAR) {
	s := f.sess
	if f.hashIsSet {
		s.ctx.farHashUnset(f)
	}
	for _, p := range s.pdrByID {
		if p.FARID == f.ID {
			p.FARID = 0
		}
	}
	f.BufferedPackets = nil
	delete(s.fars, f.ID)
	s.farPool.release(f.ID)
}

func farRemoveAll(s *Sess) {
	for _, f := range s.fars {
		farRemove(f)
	}
}
