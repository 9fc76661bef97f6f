package pfcpctx

import (
	"net/netip"

	"go.uber.org/zap"
)

// AddrFamily distinguishes IPv4 from IPv6 for subnet matching. Unspecified
// is a subnet-only value meaning "matches either family" during lookup.
type AddrFamily uint8

const (
	AFUnspecified AddrFamily = iota
	AFIPv4
	AFIPv6
)

// AddrRange is one configured (low, high) sub-range carving a subnet into
// an allocatable sub-interval. A zero-value Low/High (IsValid() == false)
// means "use the subnet's own bound".
type AddrRange struct {
	Low  netip.Addr
	High netip.Addr
}

// defaultSubnetCapacity bounds how many UeIp slots pool_generate will
// enumerate for a subnet when the caller does not specify one.
const defaultSubnetCapacity = 4096

// Subnet is an APN-scoped IPv4 or IPv6 subnet (3GPP TS 29.244's UE IP
// address pool): address, mask, gateway, device name, and a dense UeIp
// pool carved by up to N configured ranges.
type Subnet struct {
	Family    AddrFamily
	Network   netip.Addr // the subnet's network address
	Mask      []byte     // CIDR mask, len 4 (v4) or 16 (v6)
	PrefixLen int
	Gateway   netip.Addr
	APN       string
	Dev       *Dev
	Ranges    []AddrRange
	Capacity  int

	pool []UeIp
	free []int
}

func wordOffset(family AddrFamily) (maxbytes, off int) {
	if family == AFIPv6 {
		return 16, 12
	}
	return 4, 0
}

func addToLastWord(addr []byte, wordOff int, delta uint32) {
	v := uint32(addr[wordOff])<<24 | uint32(addr[wordOff+1])<<16 | uint32(addr[wordOff+2])<<8 | uint32(addr[wordOff+3])
	v += delta
	addr[wordOff] = byte(v >> 24)
	addr[wordOff+1] = byte(v >> 16)
	addr[wordOff+2] = byte(v >> 8)
	addr[wordOff+3] = byte(v)
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SubnetAdd registers subnet on the context and generates its UE IP
// address pool.
func (c *Context) SubnetAdd(s *Subnet) {
	if s.Capacity == 0 {
		s.Capacity = defaultSubnetCapacity
	}
	c.poolGenerate(s)

	c.mu.Lock()
	c.subnets = append(c.subnets, s)
	c.mu.Unlock()

	c.logger.Info("subnet added", zap.Stringer("network", s.Network), zap.String("apn", s.APN))
}

// poolGenerate enumerates all usable addresses for s.
func (c *Context) poolGenerate(s *Subnet) {
	maxbytes, wordOff := wordOffset(s.Family)
	if s.Family == AFUnspecified {
		return
	}

	network := s.Network.AsSlice()
	broadcast := make([]byte, maxbytes)
	for i := 0; i < maxbytes; i++ {
		broadcast[i] = network[i] | ^s.Mask[i]
	}

	var gateway []byte
	if s.Gateway.IsValid() {
		gateway = s.Gateway.AsSlice()
	}

	ranges := s.Ranges
	if len(ranges) == 0 {
		ranges = []AddrRange{{}}
	}

	pool := make([]UeIp, 0, s.Capacity)
	for _, r := range ranges {
		start := append([]byte(nil), network...)
		if r.Low.IsValid() {
			start = append([]byte(nil), r.Low.AsSlice()...)
		}
		end := append([]byte(nil), broadcast...)
		if r.High.IsValid() {
			end = append([]byte(nil), r.High.AsSlice()...)
			addToLastWord(end, wordOff, 1)
		}

		var inc uint32
		for len(pool) < s.Capacity {
			addr := append([]byte(nil), start...)
			addToLastWord(addr, wordOff, inc)
			inc++

			if bytesEqual(addr, end) {
				break
			}
			if bytesEqual(addr, network) {
				continue // exclude network address
			}
			if gateway != nil && bytesEqual(addr, gateway) {
				continue // exclude gateway address
			}

			a, ok := netip.AddrFromSlice(addr)
			if !ok {
				fatalInvariant("poolGenerate: invalid address bytes for subnet")
			}
			pool = append(pool, UeIp{Addr: a, subnet: s, poolIdx: len(pool)})
		}
	}

	s.pool = pool
	s.free = make([]int, len(pool))
	for i := range pool {
		s.free[i] = len(pool) - 1 - i
	}
}

// Available returns the number of unallocated addresses remaining in s's
// pool.
func (s *Subnet) Available() int {
	return len(s.free)
}

// Allocated returns the number of addresses currently allocated from s's
// pool.
func (s *Subnet) Allocated() int {
	return len(s.pool) - len(s.free)
}

// FindSubnet returns the first subnet whose family matches (or is
// unspecified) and whose APN is empty (match-any) or equals apn. APN
// matching is case-sensitive and exact.
func (c *Context) FindSubnet(family AddrFamily, apn string) (*Subnet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.subnets {
		if (s.Family == AFUnspecified || s.Family == family) &&
			(s.APN == "" || s.APN == apn) {
			return s, true
		}
	}
	return nil, false
}
