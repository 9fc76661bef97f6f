package pfcpctx

import "time"

// Counter is the usage-reporting bookkeeping state a URR carries, shaped
// after the teacher's MBR/GBR tracking in nf/upf/internal/context/upf_session.go.
type Counter struct {
	ULOctets           uint64
	DLOctets           uint64
	ULPackets          uint64
	DLPackets          uint64
	MonitoringTime     time.Time
	ReportingThreshold uint64
}

// URR is a Usage Reporting Rule (3GPP TS 29.244 clause 5.2.2): id,
// session back-pointer, and a Counter.
type URR struct {
	ID      int
	Counter Counter

	sess *Sess
}

func urrAdd(s *Sess) (*URR, error) {
	id, ok := s.urrPool.alloc()
	if !ok {
		return nil, &ResourceExhaustion{Kind: "urr", SEID: s.SEID}
	}
	u := &URR{ID: id, sess: s}
	s.urrs[id] = u
	return u, nil
}

func urrFind(s *Sess, id int) *URR {
	return s.urrs[id]
}

func urrFindOrAdd(s *Sess, id int) (*URR, error) {
	if u := urrFind(s, id); u != nil {
		return u, nil
	}
	return urrAdd(s)
}

func urrRemove(u *URR) {
	s := u.sess
	for _, p := range s.pdrByID {
		if p.URRID == u.ID {
			p.URRID = 0
		}
	}
	delete(s.urrs, u.ID)
	s.urrPool.release(u.ID)
}

func urrRemoveAll(s *Sess) {
	for _, u := range s.urrs {
		urrRemove(u)
	}
}
