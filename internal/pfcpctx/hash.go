package pfcpctx

import (
	"encoding/binary"
	"net/netip"

	"github.com/your-org/pfcp-core/internal/metrics"
)

// pdrHashKey composes the 64-bit PDR-by-(TEID,QFI) lookup key.
func pdrHashKey(teid uint32, qfi uint8) uint64 {
	return uint64(teid)<<8 | uint64(qfi)
}

// farHashKey composes the variable-length FAR-by-(TEID,peer-addr) key:
// teid (4 bytes) concatenated with the peer's IPv4 or IPv6 bytes. The
// result is converted to a string for use as a Go map key; string
// conversion of a []byte copies, so the returned key is safe to retain
// independent of buf's lifetime. An address outside AF_INET/AF_INET6 is
// a fatal invariant violation: this path is only reached for addresses
// this core itself accepted onto a FAR, never untrusted wire input.
func farHashKey(teid uint32, addr netip.Addr) string {
	buf := make([]byte, 4, 20)
	binary.BigEndian.PutUint32(buf, teid)
	switch {
	case addr.Is4():
		b := addr.As4()
		buf = append(buf, b[:]...)
	case addr.Is6():
		b := addr.As16()
		buf = append(buf, b[:]...)
	default:
		fatalInvariant("farHashKey: unknown address family for %v", addr)
	}
	return string(buf)
}

// pdrHashSet publishes p under (teid, qfi), first removing any
// previously published key (unpublish-before-republish).
func (c *Context) pdrHashSet(p *PDR, teid uint32, qfi uint8) {
	if p.hashIsSet {
		delete(c.pdrHash, p.hashKey)
	}
	key := pdrHashKey(teid, qfi)
	c.pdrHash[key] = p
	p.hashKey = key
	p.hashIsSet = true
	metrics.SetHashEntries("pdr", len(c.pdrHash))
}

// pdrHashUnset removes p's published key, if any.
func (c *Context) pdrHashUnset(p *PDR) {
	if !p.hashIsSet {
		return
	}
	delete(c.pdrHash, p.hashKey)
	p.hashIsSet = false
	metrics.SetHashEntries("pdr", len(c.pdrHash))
}

// PDRByTEIDQFI looks up a PDR by its published (teid, qfi) key.
func (c *Context) PDRByTEIDQFI(teid uint32, qfi uint8) (*PDR, bool) {
	p, ok := c.pdrHash[pdrHashKey(teid, qfi)]
	return p, ok
}

// farHashSet publishes f under (teid, addr), unpublishing any previous
// key first.
func (c *Context) farHashSet(f *FAR, teid uint32, addr netip.Addr) {
	if f.hashIsSet {
		delete(c.farHash, string(f.hashKey))
	}
	key := farHashKey(teid, addr)
	c.farHash[key] = f
	f.hashKey = []byte(key)
	f.hashIsSet = true
	metrics.SetHashEntries("far", len(c.farHash))
}

func (c *Context) farHashUnset(f *FAR) {
	if !f.hashIsSet {
		return
	}
	delete(c.farHash, string(f.hashKey))
	f.hashIsSet = false
	metrics.SetHashEntries("far", len(c.farHash))
}

// FARByTEIDPeer looks up a FAR by its published (teid, peer-addr) key.
func (c *Context) FARByTEIDPeer(teid uint32, addr netip.Addr) (*FAR, bool) {
	f, ok := c.farHash[farHashKey(teid, addr)]
	return f, ok
}

// FARByErrorIndicationKey resolves the FAR responsible for a received
// Error Indication, given the (teid, peer-addr-bytes) pair already
// extracted from its TLV body.
func (c *Context) FARByErrorIndicationKey(teid uint32, peerAddr []byte) (*FAR, bool) {
	buf := make([]byte, 4, 4+len(peerAddr))
	binary.BigEndian.PutUint32(buf, teid)
	buf = append(buf, peerAddr...)
	f, ok := c.farHash[string(buf)]
	return f, ok
}
