package city

// Pool owns exactly K chunks in a fixed-size ring. Chunks are built once; a
// recycle event only rewrites the trailing chunk's offset, so steady-state
// per-frame cost is O(1) with zero allocation.
type Pool struct {
	chunks   []*Chunk // index = slot
	head     int      // ring index of the nearest (trailing) chunk
	traveled float64  // distance since last recycle, always in [0, length)
	length   float64
}

// NewPool builds K chunks at offsets 0, -L, -2L, … so their spans tile the
// corridor contiguously, nearest first.
func NewPool(seed uint64, k int, p Params) *Pool {
	if k < 1 {
		k = 1
	}
	pool := &Pool{
		chunks: make([]*Chunk, k),
		length: p.ChunkLength,
	}
	for slot := 0; slot < k; slot++ {
		pool.chunks[slot] = BuildChunk(seed, slot, p)
	}
	return pool
}

// Advance accumulates travelled distance and recycles as many times as the
// accumulated counter allows. The counter is decremented by exactly one chunk
// length per recycle, never reset, so fractional travel carries across events.
// Returns the number of recycle events triggered.
func (p *Pool) Advance(dist float64) int {
	p.traveled += dist
	n := 0
	for p.traveled >= p.length {
		c := p.chunks[p.head]
		c.Offset -= float64(len(p.chunks)) * p.length
		p.head = (p.head + 1) % len(p.chunks)
		p.traveled -= p.length
		n++
	}
	return n
}

// Ordered appends the chunks in pool order (nearest to farthest) to dst and
// returns it. Pass a reused slice to avoid per-frame allocation.
func (p *Pool) Ordered(dst []*Chunk) []*Chunk {
	for i := 0; i < len(p.chunks); i++ {
		dst = append(dst, p.chunks[(p.head+i)%len(p.chunks)])
	}
	return dst
}

// Chunk returns the chunk for a slot.
func (p *Pool) Chunk(slot int) *Chunk {
	return p.chunks[slot]
}

// Len returns K.
func (p *Pool) Len() int {
	return len(p.chunks)
}

// Traveled returns the accumulated distance since the last recycle.
func (p *Pool) Traveled() float64 {
	return p.traveled
}
