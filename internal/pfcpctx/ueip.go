package pfcpctx

import (
	"context"
	"net/netip"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/your-org/pfcp-core/internal/metrics"
)

// UeIp is one subscriber address: either pooled (owned by its subnet's
// pool) or static (separately allocated; the caller supplied the bytes).
// StaticIP discriminates which UeIPFree dispatches on.
type UeIp struct {
	Addr     netip.Addr
	StaticIP bool

	subnet  *Subnet
	poolIdx int
}

// Subnet returns the subnet u was allocated from. It remains valid for
// u's lifetime.
func (u *UeIp) Subnet() *Subnet {
	return u.subnet
}

// UeIPAlloc allocates a UE IP address for apn/family. If requested is
// valid (the caller's way of saying "non-zero"), the returned UeIp is
// static and carries those exact bytes; otherwise the next free slot is
// popped from the matching subnet's pool.
func (c *Context) UeIPAlloc(family AddrFamily, apn string, requested netip.Addr) (*UeIp, error) {
	_, span := c.tracer.Start(context.Background(), "pfcpctx.UeIPAlloc",
		trace.WithAttributes(attribute.String("apn", apn)))
	defer span.End()

	subnet, ok := c.FindSubnet(family, apn)
	if !ok {
		return nil, &ConfigError{Key: "pdn.apn", Reason: "no subnet configured for family=" + familyString(family) + " apn=" + apn}
	}

	if requested.IsValid() {
		ue := &UeIp{Addr: requested, StaticIP: true, subnet: subnet}
		return ue, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(subnet.free) == 0 {
		return nil, &ResourceExhaustion{Kind: "ue_ip"}
	}
	idx := subnet.free[len(subnet.free)-1]
	subnet.free = subnet.free[:len(subnet.free)-1]
	metrics.SetUEIPPoolAvailable(subnet.APN, len(subnet.free))
	ue := subnet.pool[idx]
	return &ue, nil
}

// UeIPFree dispatches on u.StaticIP: a static allocation is simply
// discarded by the caller (no pool slot to restore); a dynamic one
// returns its slot to the subnet's pool.
func (c *Context) UeIPFree(u *UeIp) {
	if u.StaticIP {
		return
	}
	subnet := u.subnet

	c.mu.Lock()
	defer c.mu.Unlock()
	subnet.free = append(subnet.free, u.poolIdx)
	metrics.SetUEIPPoolAvailable(subnet.APN, len(subnet.free))
}

func familyString(f AddrFamily) string {
	switch f {
	case AFIPv4:
		return "ipv4"
	case AFIPv6:
		return "ipv6"
	default:
		return "unspecified"
	}
}
