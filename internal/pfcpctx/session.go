package pfcpctx

import (
	"sort"

	"github.com/google/uuid"
)

// Default session-scoped pool capacities. These stand in for the
// 3GPP-documented MAX_NUM_OF_<KIND> constants (TS 29.244 clause 8.2).
const (
	MaxPDRPerSession = 64
	MaxFARPerSession = 64
	MaxURRPerSession = 64
	MaxQERPerSession = 64
	maxBARPerSession = 1
)

// Sess is the root aggregate of a PFCP session: it owns the
// PDR/FAR/URR/QER collections, at most one BAR, and an id pool per kind.
type Sess struct {
	SEID    uint64
	TraceID uuid.UUID

	pdrPool *idPool
	farPool *idPool
	urrPool *idPool
	qerPool *idPool
	barPool *idPool

	pdrList []*PDR // kept sorted ascending by Precedence (I2)
	pdrByID map[int]*PDR
	fars    map[int]*FAR
	urrs    map[int]*URR
	qers    map[int]*QER
	bar     *BAR

	ctx *Context
}

func newSess(ctx *Context, seid uint64) *Sess {
	return &Sess{
		SEID:    seid,
		TraceID: uuid.New(),
		pdrPool: newIDPool(MaxPDRPerSession),
		farPool: newIDPool(MaxFARPerSession),
		urrPool: newIDPool(MaxURRPerSession),
		qerPool: newIDPool(MaxQERPerSession),
		barPool: newIDPool(maxBARPerSession),
		pdrByID: make(map[int]*PDR),
		fars:    make(map[int]*FAR),
		urrs:    make(map[int]*URR),
		qers:    make(map[int]*QER),
		ctx:     ctx,
	}
}

// insertPDRSorted inserts p into pdr_list at the position a stable
// ascending-precedence comparator implies (I2): ties keep earlier-added
// PDRs before later ones, since sort.Search returns the first index
// whose precedence is strictly greater than p's, which for ties is the
// position right after the existing run of equal precedences appended
// in insertion order — equivalently, insertion happens after all
// existing entries with precedence <= p.Precedence.
func (s *Sess) insertPDRSorted(p *PDR) {
	i := sort.Search(len(s.pdrList), func(i int) bool {
		return s.pdrList[i].Precedence > p.Precedence
	})
	s.pdrList = append(s.pdrList, nil)
	copy(s.pdrList[i+1:], s.pdrList[i:])
	s.pdrList[i] = p
}

func (s *Sess) removePDRFromList(p *PDR) {
	for i, q := range s.pdrList {
		if q == p {
			s.pdrList = append(s.pdrList[:i], s.pdrList[i+1:]...)
			return
		}
	}
}

// PDRList returns the session's PDRs in ascending precedence order. The
// returned slice is owned by the session; callers must not mutate it.
func (s *Sess) PDRList() []*PDR {
	return s.pdrList
}

// BAR returns the session's buffering action rule, or nil if none exists.
func (s *Sess) BAR() *BAR {
	return s.bar
}
