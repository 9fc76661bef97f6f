package config

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

func TestApplyWiresSubnetsAndPeers(t *testing.T) {
	ctx := pfcpctx.New(nil)

	local := LocalConfig{
		PDN: []PDNConfig{
			{Addr: "10.45.0.0/24", APN: "internet"},
		},
	}
	remote := RemoteConfig{
		PFCP: []PFCPPeerConfig{
			{Addr: []string{"127.0.0.2"}, TAC: []uint16{7}, APN: []string{"internet"}},
		},
	}

	require.NoError(t, Apply(ctx, local, remote, nil))

	subnet, ok := ctx.FindSubnet(pfcpctx.AFIPv4, "internet")
	require.True(t, ok)
	assert.Equal(t, "internet", subnet.APN)

	node, ok := ctx.NodeFind(netip.MustParseAddr("127.0.0.2"))
	require.True(t, ok)
	assert.Equal(t, []uint16{7}, node.TAC)
	assert.True(t, node.RR, "RR defaults true when unset")
}

func TestApplyRREnabledFalseWhenExplicitlySet(t *testing.T) {
	ctx := pfcpctx.New(nil)
	no := false
	remote := RemoteConfig{
		PFCP: []PFCPPeerConfig{
			{Addr: []string{"127.0.0.3"}, RR: &no},
		},
	}

	require.NoError(t, Apply(ctx, LocalConfig{}, remote, nil))

	node, ok := ctx.NodeFind(netip.MustParseAddr("127.0.0.3"))
	require.True(t, ok)
	assert.False(t, node.RR)
}

func TestApplyInvalidCIDR(t *testing.T) {
	ctx := pfcpctx.New(nil)
	local := LocalConfig{PDN: []PDNConfig{{Addr: "not-a-cidr"}}}
	err := Apply(ctx, local, RemoteConfig{}, nil)
	assert.Error(t, err)
}
