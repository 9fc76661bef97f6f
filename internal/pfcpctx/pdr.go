package pfcpctx

import "net/netip"

// SourceInterface is the PFCP interface a PDR's PDI matches traffic
// against.
type SourceInterface uint8

const (
	SrcIfAccess SourceInterface = iota
	SrcIfCore
	SrcIfSGiLAN
	SrcIfCPFunction
)

// FTEID is a Fully Qualified Tunnel Endpoint Identifier: a GTP-U TEID
// plus the peer address it is reachable at.
type FTEID struct {
	TEID uint32
	Addr netip.Addr
}

// PDR is a Packet Detection Rule (3GPP TS 29.244 clause 5.2.1). Its
// FARID/URRID/QERID are
// weak references into the owning session's sibling collections: zero
// means unset. farRemove, urrRemove and qerRemove reset any PDR's
// matching id to zero so these never dangle.
type PDR struct {
	ID         int
	Precedence uint32
	SrcIf      SourceInterface
	FTEID      *FTEID
	QFI        uint8
	DNN        string
	Rules      []*Rule

	FARID int
	URRID int
	QERID int

	sess      *Sess
	hashKey   uint64
	hashIsSet bool
}

// pdrAdd allocates a new PDR from the session's pool, default-initialized
// (empty PDI, no rule associations), and inserts it into pdr_list at the
// position its zero precedence implies (stable, after any existing ties).
func pdrAdd(s *Sess) (*PDR, error) {
	id, ok := s.pdrPool.alloc()
	if !ok {
		return nil, &ResourceExhaustion{Kind: "pdr", SEID: s.SEID}
	}
	p := &PDR{ID: id, sess: s}
	s.pdrByID[id] = p
	s.insertPDRSorted(p)
	return p, nil
}

// pdrFind looks up a PDR by id within the session; it does not consult
// the global hash.
func pdrFind(s *Sess, id int) *PDR {
	return s.pdrByID[id]
}

// pdrFindOrAdd is the principal ingress for PFCP request processing: the
// first mention of an id creates the rule with default state.
func pdrFindOrAdd(s *Sess, id int) (*PDR, error) {
	if p := pdrFind(s, id); p != nil {
		return p, nil
	}
	return pdrAdd(s)
}

// reorderByPrecedence detaches p from pdr_list, updates its precedence,
// and reinserts it at the position a stable ascending-precedence
// comparator implies.
func reorderByPrecedence(p *PDR, newPrecedence uint32) {
	s := p.sess
	s.removePDRFromList(p)
	p.Precedence = newPrecedence
	s.insertPDRSorted(p)
}

// pdrAssociateFAR installs the weak PDR -> FAR cross-reference.
func pdrAssociateFAR(p *PDR, f *FAR) {
	p.FARID = f.ID
}

func pdrAssociateURR(p *PDR, u *URR) {
	p.URRID = u.ID
}

func pdrAssociateQER(p *PDR, q *QER) {
	p.QERID = q.ID
}

// pdrRemove deletes p: unpublishes its global hash entry (if any) before
// releasing its id back to the pool (I4).
func pdrRemove(p *PDR) {
	s := p.sess
	if p.hashIsSet {
		s.ctx.pdrHashUnset(p)
	}
	s.removePDRFromList(p)
	delete(s.pdrByID, p.ID)
	s.pdrPool.release(p.ID)
}

// pdrRemoveAll removes every PDR owned by s.
func pdrRemoveAll(s *Sess) {
	for _, p := range append([]*PDR(nil), s.pdrList...) {
		pdrRemove(p)
	}
}

// sessDefaultPDR returns the last PDR in precedence order whose SrcIf
// matches srcIf — the fallback classifier for unmatched traffic.
func sessDefaultPDR(s *Sess, srcIf SourceInterface) *PDR {
	var found *PDR
	for _, p := range s.pdrList {
		if p.SrcIf == srcIf {
			found = p
		}
	}
	return found
}
