package pfcpctx

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rule ids are unique per session and per kind.
func TestUniqueRuleIDsPerSession(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(1)

	p1, err := sess.PDRAdd()
	require.NoError(t, err)
	p2, err := sess.PDRAdd()
	require.NoError(t, err)
	assert.NotEqual(t, p1.ID, p2.ID)

	f1, err := sess.FARAdd()
	require.NoError(t, err)
	assert.Equal(t, p1.ID, f1.ID, "id uniqueness is scoped per kind, not shared")
}

// The PDR list stays sorted ascending by precedence, ties in insertion
// order.
func TestPDRListSortedByPrecedence(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(1)

	precedences := []uint32{100, 50, 200, 50}
	var pdrs []*PDR
	for _, prec := range precedences {
		p, err := sess.PDRAdd()
		require.NoError(t, err)
		sess.PDRReorder(p, prec)
		pdrs = append(pdrs, p)
	}

	got := make([]uint32, 0, len(sess.PDRList()))
	for _, p := range sess.PDRList() {
		got = append(got, p.Precedence)
	}
	assert.Equal(t, []uint32{50, 50, 100, 200}, got)

	// The first-added PDR (original precedence 100) now has precedence 10
	// and must move to the head of the list.
	sess.PDRReorder(pdrs[0], 10)
	assert.Equal(t, pdrs[0], sess.PDRList()[0])
}

// At most one BAR per session; BARNew is idempotent.
func TestAtMostOneBARPerSession(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(1)

	b1, err := sess.BARNew()
	require.NoError(t, err)
	b2, err := sess.BARNew()
	require.NoError(t, err)
	assert.Same(t, b1, b2, "a second BARNew call returns the existing BAR")

	sess.BARDelete()
	assert.Nil(t, sess.BAR())

	b3, err := sess.BARNew()
	require.NoError(t, err)
	assert.NotNil(t, b3)
}

// Hash keys must be unpublished before republish or free.
func TestHashKeyLifecyclePDR(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(1)

	p, err := sess.PDRAdd()
	require.NoError(t, err)
	p.FTEID = &FTEID{TEID: 100, Addr: netip.MustParseAddr("10.0.0.1")}
	p.QFI = 5
	sess.PublishPDR(p)

	found, ok := ctx.PDRByTEIDQFI(100, 5)
	require.True(t, ok)
	assert.Same(t, p, found)

	// Republish under a new key; the old key must no longer resolve.
	p.FTEID.TEID = 200
	sess.PublishPDR(p)
	_, ok = ctx.PDRByTEIDQFI(100, 5)
	assert.False(t, ok, "old key must be unpublished before republish")
	found, ok = ctx.PDRByTEIDQFI(200, 5)
	require.True(t, ok)
	assert.Same(t, p, found)

	sess.PDRRemove(p)
	_, ok = ctx.PDRByTEIDQFI(200, 5)
	assert.False(t, ok, "removing the PDR must unpublish its hash entry")
}

func TestHashKeyLifecycleFAR(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(1)

	f, err := sess.FARAdd()
	require.NoError(t, err)
	addr := netip.MustParseAddr("10.0.0.2")
	f.OuterHeaderCreation = &OuterHeaderCreation{TEID: 7, Addr: addr}
	sess.PublishFAR(f)

	found, ok := ctx.FARByTEIDPeer(7, addr)
	require.True(t, ok)
	assert.Same(t, f, found)

	sess.FARRemove(f)
	_, ok = ctx.FARByTEIDPeer(7, addr)
	assert.False(t, ok)
}

// A UeIp's subnet reference remains valid for its lifetime.
func TestUeIPSubnetRemainsValid(t *testing.T) {
	ctx := New(nil)
	ctx.SubnetAdd(&Subnet{
		Family:  AFIPv4,
		Network: netip.MustParseAddr("10.45.0.0"),
		Mask:    []byte{255, 255, 0, 0},
		APN:     "internet",
	})

	ue, err := ctx.UeIPAlloc(AFIPv4, "internet", netip.Addr{})
	require.NoError(t, err)
	require.NotNil(t, ue.Subnet())
	assert.Equal(t, "internet", ue.Subnet().APN)
}

// Pool bounds are inclusive: 1 <= id <= cap.
func TestPoolBoundsInclusive(t *testing.T) {
	p := newIDPool(2)
	id1, ok := p.alloc()
	require.True(t, ok)
	id2, ok := p.alloc()
	require.True(t, ok)
	assert.ElementsMatch(t, []int{1, 2}, []int{id1, id2})

	_, ok = p.alloc()
	assert.False(t, ok, "pool must be exhausted at cap")

	assert.Panics(t, func() { p.release(0) })
	assert.Panics(t, func() { p.release(3) })
}

// pfcp_started is Unix seconds offset into the NTP epoch.
func TestPFCPStartedNTPOffset(t *testing.T) {
	ctx := New(nil)
	started := ctx.PFCPStarted()
	assert.Greater(t, started, uint64(2208988800))
}

// Pool allocation returns addresses in ascending order, starting from
// the lowest usable address in the configured range.
func TestUeIPAllocAscendingFromRange(t *testing.T) {
	ctx := New(nil)
	ctx.SubnetAdd(&Subnet{
		Family:  AFIPv4,
		Network: netip.MustParseAddr("10.45.0.0"),
		Mask:    []byte{255, 255, 0, 0},
		APN:     "internet",
		Ranges: []AddrRange{
			{Low: netip.MustParseAddr("10.45.0.10"), High: netip.MustParseAddr("10.45.0.20")},
		},
	})

	ue, err := ctx.UeIPAlloc(AFIPv4, "internet", netip.Addr{})
	require.NoError(t, err)
	assert.Equal(t, "10.45.0.10", ue.Addr.String())

	ue2, err := ctx.UeIPAlloc(AFIPv4, "internet", netip.Addr{})
	require.NoError(t, err)
	assert.Equal(t, "10.45.0.11", ue2.Addr.String())

	ctx.UeIPFree(ue)
	ue3, err := ctx.UeIPAlloc(AFIPv4, "internet", netip.Addr{})
	require.NoError(t, err)
	assert.Equal(t, "10.45.0.10", ue3.Addr.String(), "freed slots are reused before advancing further")
}

func TestSessClearRemovesEverything(t *testing.T) {
	ctx := New(nil)
	sess := ctx.CreateSession(9)
	_, err := sess.PDRAdd()
	require.NoError(t, err)
	_, err = sess.FARAdd()
	require.NoError(t, err)
	_, err = sess.BARNew()
	require.NoError(t, err)

	ctx.SessClear(sess)
	assert.Empty(t, sess.PDRList())
	assert.Nil(t, sess.BAR())
}
