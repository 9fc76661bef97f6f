package pfcpctx

import "fmt"

// ConfigError reports a missing required local binding, a malformed
// CIDR, or a UE IP allocation request with no matching subnet.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pfcpctx: config %s: %s", e.Key, e.Reason)
}

// ResourceExhaustion reports an empty pool. The caller decides how to
// fail the PFCP request; this core only reports the condition.
type ResourceExhaustion struct {
	Kind string
	SEID uint64
}

func (e *ResourceExhaustion) Error() string {
	return fmt.Sprintf("pfcpctx: %s pool exhausted for session %d", e.Kind, e.SEID)
}

// fatalInvariant panics on a programming error this core's own callers
// are expected never to trigger: a hash table left in an inconsistent
// state, or an address family outside AF_INET/AF_INET6 reaching a path
// that only accepts those two. This is fatal by design, not a returned
// error.
func fatalInvariant(format string, args ...any) {
	panic("pfcpctx: fatal invariant violation: " + fmt.Sprintf(format, args...))
}
