// Package pfcpctx implements the session object graph, the global rule
// lookup hashes, the UE IP subnet allocator, and the peer/GTP-U resource
// registry of a PFCP peer. Message dispatch, the UDP socket, and the
// transaction table remain external collaborators (see collaborators.go).
package pfcpctx

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/your-org/pfcp-core/internal/metrics"
)

// ntpEpochOffset is the offset between the Unix epoch and the NTP epoch,
// in seconds (I7).
const ntpEpochOffset = 2208988800

// Context is the process-wide PFCP peer state: sessions, the global PDR
// and FAR hashes, configured subnets, and the peer registry. Design
// Notes §9 observes the original is a module-global singleton kept only
// for collaborator convenience; this type may be constructed explicitly
// and passed around instead.
type Context struct {
	mu sync.RWMutex

	sessions map[uint64]*Sess
	pdrHash  map[uint64]*PDR
	farHash  map[string]*FAR

	subnets []*Subnet
	nodes   []*Node
	devs    map[string]*Dev

	startedAt time.Time

	logger *zap.Logger
	tracer trace.Tracer
}

// New creates an empty Context. A nil logger defaults to zap.NewNop(),
// matching the teacher's convention of defaulting to whatever logger was
// handed in rather than requiring a non-nil one.
func New(logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Context{
		sessions:  make(map[uint64]*Sess),
		pdrHash:   make(map[uint64]*PDR),
		farHash:   make(map[string]*FAR),
		devs:      make(map[string]*Dev),
		startedAt: time.Now(),
		logger:    logger,
		tracer:    otel.Tracer("pfcp-core"),
	}
}

// PFCPStarted returns pfcp_started: Unix-epoch seconds at init, offset
// into the NTP epoch (I7).
func (c *Context) PFCPStarted() uint64 {
	return uint64(c.startedAt.Unix()) + ntpEpochOffset
}

// CreateSession creates and registers a new session under seid.
func (c *Context) CreateSession(seid uint64) *Sess {
	_, span := c.tracer.Start(context.Background(), "pfcpctx.CreateSession",
		trace.WithAttributes(attribute.Int64("seid", int64(seid))))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	s := newSess(c, seid)
	c.sessions[seid] = s
	metrics.SessionsActive.Set(float64(len(c.sessions)))
	c.logger.Info("pfcp session created", zap.Uint64("seid", seid))
	return s
}

// GetSession retrieves a session by SEID.
func (c *Context) GetSession(seid uint64) (*Sess, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[seid]
	return s, ok
}

// SessClear removes all PDRs, FARs, URRs, and QERs owned by s, and
// deletes its BAR if present. Ordering only matters
// inasmuch as published hashkeys are unpublished before the owning
// rule's id is released; pdrRemove/farRemove already guarantee that.
func (c *Context) SessClear(s *Sess) {
	_, span := c.tracer.Start(context.Background(), "pfcpctx.SessClear",
		trace.WithAttributes(attribute.Int64("seid", int64(s.SEID))))
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	pdrRemoveAll(s)
	farRemoveAll(s)
	urrRemoveAll(s)
	qerRemoveAll(s)
	barDelete(s)
}

// DeleteSession clears s and removes it from the context.
func (c *Context) DeleteSession(seid uint64) {
	c.mu.Lock()
	s, ok := c.sessions[seid]
	c.mu.Unlock()
	if !ok {
		return
	}

	c.SessClear(s)

	c.mu.Lock()
	delete(c.sessions, seid)
	metrics.SessionsActive.Set(float64(len(c.sessions)))
	c.mu.Unlock()

	c.logger.Info("pfcp session deleted", zap.Uint64("seid", seid))
}

// Sessions returns a snapshot slice of all active sessions.
func (c *Context) Sessions() []*Sess {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Sess, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s)
	}
	return out
}

// Subnets returns a snapshot slice of all configured UE IP subnets.
func (c *Context) Subnets() []*Subnet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Subnet, len(c.subnets))
	copy(out, c.subnets)
	return out
}

// Nodes returns a snapshot slice of all registered peers.
func (c *Context) Nodes() []*Node {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}
