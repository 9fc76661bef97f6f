package pfcpctx

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeAddFindRemove(t *testing.T) {
	c := New(nil)
	addr := netip.MustParseAddr("10.0.0.1")

	n := c.NodeAdd(addr)
	require.NotNil(t, n)
	assert.True(t, n.RR)

	found, ok := c.NodeFind(addr)
	require.True(t, ok)
	assert.Same(t, n, found)

	_, ok = c.NodeFind(netip.MustParseAddr("10.0.0.2"))
	assert.False(t, ok)

	c.NodeRemove(n)
	_, ok = c.NodeFind(addr)
	assert.False(t, ok)
}

func TestNodeRemoveAll(t *testing.T) {
	c := New(nil)
	c.NodeAdd(netip.MustParseAddr("10.0.0.1"))
	c.NodeAdd(netip.MustParseAddr("10.0.0.2"))

	c.NodeRemoveAll()
	_, ok := c.NodeFind(netip.MustParseAddr("10.0.0.1"))
	assert.False(t, ok)
}

func TestGtpuResourceFindAssoni(t *testing.T) {
	n := &Node{}
	r := &GtpuResource{NetworkInstance: "internet", AssocNetworkInst: true}
	n.GtpuResourceAdd(r)

	_, ok := n.GtpuResourceFind("internet", InterfaceAccess)
	assert.True(t, ok)

	_, ok = n.GtpuResourceFind("ims", InterfaceAccess)
	assert.False(t, ok, "mismatched network instance must not match when assoni is set")

	_, ok = n.GtpuResourceFind("", InterfaceAccess)
	assert.True(t, ok, "empty query apn skips the assoni filter")
}

func TestGtpuResourceFindAssosi(t *testing.T) {
	n := &Node{}
	r := &GtpuResource{SourceInterface: InterfaceAccess, AssocSourceIntf: true}
	n.GtpuResourceAdd(r)

	_, ok := n.GtpuResourceFind("", InterfaceAccess)
	assert.True(t, ok)

	_, ok = n.GtpuResourceFind("", InterfaceCore)
	assert.False(t, ok, "mismatched source interface must not match when assosi is set")
}

func TestGtpuResourceFindAssosiAboveLIFunctionIgnoresFilter(t *testing.T) {
	n := &Node{}
	r := &GtpuResource{SourceInterface: InterfaceLIFunction + 1, AssocSourceIntf: true}
	n.GtpuResourceAdd(r)

	_, ok := n.GtpuResourceFind("", InterfaceAccess)
	assert.True(t, ok, "source interfaces above LIFunction are exempt from assosi comparison")
}

func TestGtpuResourceRemove(t *testing.T) {
	n := &Node{}
	r1 := &GtpuResource{NetworkInstance: "a", AssocNetworkInst: true}
	r2 := &GtpuResource{NetworkInstance: "b", AssocNetworkInst: true}
	n.GtpuResourceAdd(r1)
	n.GtpuResourceAdd(r2)

	n.GtpuResourceRemove(r1)
	found, ok := n.GtpuResourceFind("b", InterfaceAccess)
	require.True(t, ok)
	assert.Same(t, r2, found)

	_, ok = n.GtpuResourceFind("a", InterfaceAccess)
	assert.False(t, ok)

	n.GtpuResourceRemoveAll()
	_, ok = n.GtpuResourceFind("b", InterfaceAccess)
	assert.False(t, ok)
}
