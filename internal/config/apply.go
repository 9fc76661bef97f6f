package config

import (
	"fmt"
	"net/netip"
	"strings"

	"go.uber.org/zap"

	"github.com/your-org/pfcp-core/internal/pfcpctx"
)

func parseFamily(s string) pfcpctx.AddrFamily {
	switch strings.ToLower(s) {
	case "ipv4", "v4", "4":
		return pfcpctx.AFIPv4
	case "ipv6", "v6", "6":
		return pfcpctx.AFIPv6
	default:
		return pfcpctx.AFUnspecified
	}
}

func parseRange(s string) (pfcpctx.AddrRange, error) {
	lowStr, highStr, ok := strings.Cut(s, "-")
	if !ok {
		return pfcpctx.AddrRange{}, fmt.Errorf("range %q: expected \"low-high\"", s)
	}
	low, err := netip.ParseAddr(strings.TrimSpace(lowStr))
	if err != nil {
		return pfcpctx.AddrRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	high, err := netip.ParseAddr(strings.TrimSpace(highStr))
	if err != nil {
		return pfcpctx.AddrRange{}, fmt.Errorf("range %q: %w", s, err)
	}
	return pfcpctx.AddrRange{Low: low, High: high}, nil
}

// Apply wires a parsed configuration into ctx: every local.pdn entry
// becomes a Subnet, every remote.pfcp entry becomes a Node carrying its
// affinity arrays.
func Apply(ctx *pfcpctx.Context, local LocalConfig, remote RemoteConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, pdn := range local.PDN {
		prefix, err := netip.ParsePrefix(pdn.Addr)
		if err != nil {
			return &pfcpctx.ConfigError{Key: "local.pdn.addr", Reason: err.Error()}
		}

		mask := make([]byte, prefix.Addr().BitLen()/8)
		ones := prefix.Bits()
		for i := range mask {
			switch {
			case ones >= 8:
				mask[i] = 0xff
				ones -= 8
			case ones > 0:
				mask[i] = byte(0xff << (8 - ones))
				ones = 0
			}
		}

		family := pfcpctx.AFIPv4
		if prefix.Addr().Is6() {
			family = pfcpctx.AFIPv6
		}

		var dev *pfcpctx.Dev
		if pdn.Dev != "" {
			dev = ctx.DevAdd(pdn.Dev)
		}

		var ranges []pfcpctx.AddrRange
		for _, rs := range pdn.Range {
			r, err := parseRange(rs)
			if err != nil {
				return &pfcpctx.ConfigError{Key: "local.pdn.range", Reason: err.Error()}
			}
			ranges = append(ranges, r)
		}

		ctx.SubnetAdd(&pfcpctx.Subnet{
			Family:    family,
			Network:   prefix.Masked().Addr(),
			Mask:      mask,
			PrefixLen: prefix.Bits(),
			APN:       pdn.APN,
			Dev:       dev,
			Ranges:    ranges,
		})
		logger.Info("pdn subnet configured", zap.String("apn", pdn.APN), zap.String("cidr", pdn.Addr))
	}

	for _, peer := range remote.PFCP {
		for _, a := range peer.Addr {
			addr, err := netip.ParseAddr(a)
			if err != nil {
				return &pfcpctx.ConfigError{Key: "remote.pfcp.addr", Reason: err.Error()}
			}
			n := ctx.NodeAdd(addr)
			n.TAC = peer.TAC
			n.APN = peer.APN
			n.ECellID = peer.ECellID
			n.NRCellID = peer.NRCellID
			n.RR = peer.RR == nil || *peer.RR
			logger.Info("pfcp peer configured", zap.String("addr", a))
		}
	}

	return nil
}
