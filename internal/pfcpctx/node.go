package pfcpctx

import "net/netip"

// Interface enumerates the PFCP source/destination interface values used
// for GtpuResource matching (3GPP TS 29.244 clause 8.2.2, Source
// Interface IE). LIFunction is the boundary below which assosi-gated
// comparisons apply.
type Interface uint8

const (
	InterfaceAccess Interface = iota
	InterfaceCore
	InterfaceSGiLAN
	InterfaceCPFunction
	InterfaceLIFunction
	interfaceUnset Interface = 0xff
)

// GtpuResource is a User Plane IP Resource Information element (3GPP TS
// 29.244 clause 8.2.62) copied from a peer's PFCP Association Setup. It
// is consulted by GtpuResourceFind with the assoni/assosi flag-gated
// filters the same clause defines.
type GtpuResource struct {
	TEIDRange        uint8
	Addr             netip.Addr
	NetworkInstance  string
	SourceInterface  Interface
	AssocNetworkInst bool // assoni: NetworkInstance participates in matching
	AssocSourceIntf  bool // assosi: SourceInterface participates in matching
}

func (r *GtpuResource) matches(apn string, srcIf Interface) bool {
	if r.AssocNetworkInst && r.NetworkInstance != "" &&
		apn != "" && apn != r.NetworkInstance {
		return false
	}
	if r.AssocSourceIntf &&
		r.SourceInterface <= InterfaceLIFunction && srcIf <= InterfaceLIFunction &&
		srcIf != r.SourceInterface {
		return false
	}
	return true
}

// Node is a remote PFCP peer record, modeled on ogs_pfcp_node: a resolved
// address, the GTP-U resources it advertised in its Association Setup,
// and the affinity arrays steering which peer a new session is assigned
// to. The socket handle and pending-transaction table are external
// collaborators (collaborators.go) and are not modeled here.
type Node struct {
	Addr netip.Addr

	TAC      []uint16
	APN      []string
	ECellID  []uint32
	NRCellID []uint64
	RR       bool // round-robin enabled for this peer

	gtpuResources []*GtpuResource
}

// NodeAdd registers a peer at addr and returns its Node, matching
// ogs_pfcp_node_new. Unlike PDRFindOrAdd/FARFindOrAdd, this always creates a new
// record; callers calling repeatedly with the same address get
// independent Nodes, matching the source's deep-copy-on-add semantics.
func (c *Context) NodeAdd(addr netip.Addr) *Node {
	n := &Node{Addr: addr, RR: true}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = append(c.nodes, n)
	return n
}

// NodeFind returns the peer registered at addr, if any, matching
// ogs_pfcp_node_find and its sockaddr_is_equal comparison.
func (c *Context) NodeFind(addr netip.Addr) (*Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, n := range c.nodes {
		if n.Addr == addr {
			return n, true
		}
	}
	return nil, false
}

// NodeRemove releases n's GTP-U resources and unregisters n. Closing its
// socket and deleting pending transactions are collaborator
// responsibilities left to the caller; this does neither.
func (c *Context) NodeRemove(n *Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, cur := range c.nodes {
		if cur == n {
			n.GtpuResourceRemoveAll()
			c.nodes = append(c.nodes[:i], c.nodes[i+1:]...)
			return
		}
	}
}

// NodeRemoveAll unregisters every peer.
func (c *Context) NodeRemoveAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nodes = nil
}

// GtpuResources returns a snapshot slice of the resources n has
// advertised.
func (n *Node) GtpuResources() []*GtpuResource {
	out := make([]*GtpuResource, len(n.gtpuResources))
	copy(out, n.gtpuResources)
	return out
}

// GtpuResourceAdd records a GTP-U resource info element advertised by n.
func (n *Node) GtpuResourceAdd(r *GtpuResource) {
	n.gtpuResources = append(n.gtpuResources, r)
}

// GtpuResourceFind returns the first resource advertised by n matching
// apn and srcIf under the assoni/assosi filters, matching
// ogs_pfcp_find_gtpu_resource.
func (n *Node) GtpuResourceFind(apn string, srcIf Interface) (*GtpuResource, bool) {
	for _, r := range n.gtpuResources {
		if r.matches(apn, srcIf) {
			return r, true
		}
	}
	return nil, false
}

// GtpuResourceRemove deletes r from n's advertised resources.
func (n *Node) GtpuResourceRemove(r *GtpuResource) {
	for i, cur := range n.gtpuResources {
		if cur == r {
			n.gtpuResources = append(n.gtpuResources[:i], n.gtpuResources[i+1:]...)
			return
		}
	}
}

// GtpuResourceRemoveAll clears n's advertised resources.
func (n *Node) GtpuResourceRemoveAll() {
	n.gtpuResources = nil
}
