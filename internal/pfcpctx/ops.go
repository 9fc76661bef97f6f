package pfcpctx

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/your-org/pfcp-core/internal/metrics"
)

func (s *Sess) span(ctx *Context, op string) trace.Span {
	_, span := ctx.tracer.Start(context.Background(), "pfcpctx."+op,
		trace.WithAttributes(attribute.Int64("seid", int64(s.SEID))))
	return span
}

// PDRAdd allocates a new PDR in s.
func (s *Sess) PDRAdd() (*PDR, error) {
	span := s.span(s.ctx, "PDRAdd")
	defer span.End()
	p, err := pdrAdd(s)
	if err != nil {
		s.ctx.logger.Warn("pdr pool exhausted", zap.Uint64("seid", s.SEID))
		return nil, err
	}
	metrics.RecordRuleAlloc("pdr")
	return p, nil
}

// PDRFind looks up a PDR by id within s.
func (s *Sess) PDRFind(id int) (*PDR, bool) {
	p := pdrFind(s, id)
	return p, p != nil
}

// PDRFindOrAdd is the principal PFCP-request ingress for PDRs.
func (s *Sess) PDRFindOrAdd(id int) (*PDR, error) {
	return pdrFindOrAdd(s, id)
}

// PDRRemove deletes p from its session.
func (s *Sess) PDRRemove(p *PDR) {
	pdrRemove(p)
}

// PDRReorder moves p to its correct position after a precedence change.
func (s *Sess) PDRReorder(p *PDR, newPrecedence uint32) {
	reorderByPrecedence(p, newPrecedence)
}

// PDRDefault returns the fallback PDR for srcIf, matching
// ogs_pfcp_sess_default_pdr.
func (s *Sess) PDRDefault(srcIf SourceInterface) (*PDR, bool) {
	p := sessDefaultPDR(s, srcIf)
	return p, p != nil
}

// AssociateFAR, AssociateURR, AssociateQER install the weak PDR
// cross-references a PDR carries to its FAR/URR/QER.
func (s *Sess) AssociateFAR(p *PDR, f *FAR) { pdrAssociateFAR(p, f) }
func (s *Sess) AssociateURR(p *PDR, u *URR) { pdrAssociateURR(p, u) }
func (s *Sess) AssociateQER(p *PDR, q *QER) { pdrAssociateQER(p, q) }

// PublishPDR publishes p into the global PDR-by-(TEID,QFI) hash using
// its current FTEID/QFI. It is a caller error to call this without an
// FTEID set.
func (s *Sess) PublishPDR(p *PDR) {
	if p.FTEID == nil {
		fatalInvariant("PublishPDR: pdr %d has no FTEID", p.ID)
	}
	s.ctx.pdrHashSet(p, p.FTEID.TEID, p.QFI)
}

// UnpublishPDR removes p's published hash entry, if any.
func (s *Sess) UnpublishPDR(p *PDR) {
	s.ctx.pdrHashUnset(p)
}

// FARAdd allocates a new FAR in s, defaulting ApplyAction to Forward.
func (s *Sess) FARAdd() (*FAR, error) {
	span := s.span(s.ctx, "FARAdd")
	defer span.End()
	f, err := farAdd(s)
	if err != nil {
		s.ctx.logger.Warn("far pool exhausted", zap.Uint64("seid", s.SEID))
		return nil, err
	}
	metrics.RecordRuleAlloc("far")
	return f, nil
}

func (s *Sess) FARFind(id int) (*FAR, bool) {
	f := farFind(s, id)
	return f, f != nil
}

func (s *Sess) FARFindOrAdd(id int) (*FAR, error) {
	return farFindOrAdd(s, id)
}

func (s *Sess) FARRemove(f *FAR) {
	farRemove(f)
}

func (s *Sess) FARRemoveAll() {
	farRemoveAll(s)
}

func (s *Sess) FARBufferPacket(f *FAR, pkt []byte) {
	farBufferPacket(f, pkt)
}

// PublishFAR publishes f into the global FAR-by-(TEID,peer-addr) hash
// using its current OuterHeaderCreation. It is a caller error to call
// this without OuterHeaderCreation set.
func (s *Sess) PublishFAR(f *FAR) {
	if f.OuterHeaderCreation == nil {
		fatalInvariant("PublishFAR: far %d has no OuterHeaderCreation", f.ID)
	}
	s.ctx.farHashSet(f, f.OuterHeaderCreation.TEID, f.OuterHeaderCreation.Addr)
}

func (s *Sess) UnpublishFAR(f *FAR) {
	s.ctx.farHashUnset(f)
}

func (s *Sess) URRAdd() (*URR, error) {
	span := s.span(s.ctx, "URRAdd")
	defer span.End()
	u, err := urrAdd(s)
	if err != nil {
		return nil, err
	}
	metrics.RecordRuleAlloc("urr")
	return u, nil
}

func (s *Sess) URRFind(id int) (*URR, bool) {
	u := urrFind(s, id)
	return u, u != nil
}

func (s *Sess) URRFindOrAdd(id int) (*URR, error) {
	return urrFindOrAdd(s, id)
}

func (s *Sess) URRRemove(u *URR) { urrRemove(u) }

func (s *Sess) QERAdd() (*QER, error) {
	span := s.span(s.ctx, "QERAdd")
	defer span.End()
	q, err := qerAdd(s)
	if err != nil {
		return nil, err
	}
	metrics.RecordRuleAlloc("qer")
	return q, nil
}

func (s *Sess) QERFind(id int) (*QER, bool) {
	q := qerFind(s, id)
	return q, q != nil
}

func (s *Sess) QERFindOrAdd(id int) (*QER, error) {
	return qerFindOrAdd(s, id)
}

func (s *Sess) QERRemove(q *QER) { qerRemove(q) }

// BARNew creates (or returns the existing) BAR for s.
func (s *Sess) BARNew() (*BAR, error) {
	return barNew(s)
}

// BARDelete removes s's BAR, if any.
func (s *Sess) BARDelete() {
	barDelete(s)
}
