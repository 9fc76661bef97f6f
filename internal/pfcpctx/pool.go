package pfcpctx

// idPool is a bounded dense integer pool, sized at session creation: it
// hands out unique ids in [1, cap] in O(1) expected time and accepts them
// back for reuse. The documented maximum is inclusive: a valid id
// satisfies 1 <= id <= cap.
type idPool struct {
	cap  int
	free []int
}

func newIDPool(capacity int) *idPool {
	free := make([]int, capacity)
	for i := 0; i < capacity; i++ {
		free[i] = capacity - i
	}
	return &idPool{cap: capacity, free: free}
}

// alloc removes and returns an unused id. ok is false if the pool is
// exhausted.
func (p *idPool) alloc() (id int, ok bool) {
	if len(p.free) == 0 {
		return 0, false
	}
	id = p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return id, true
}

// release returns id to the pool. It is a fatal invariant violation to free
// an id outside [1, cap]: that indicates a caller bug, not a runtime
// condition.
func (p *idPool) release(id int) {
	if id < 1 || id > p.cap {
		fatalInvariant("idPool.release: id %d outside [1,%d]", id, p.cap)
	}
	p.free = append(p.free, id)
}
