package peaks

import "github.com/cwbudde/algo-spike/dsp/core"

// dequeArena stores one bounded double-ended queue of sample indices per
// channel in a single backing array. Channel c owns
// idx[c*capacity : (c+1)*capacity] as a ring.
type dequeArena struct {
	idx      []int
	head     []int
	size     []int
	capacity int
}

// reset prepares n empty deques of the given capacity, reusing storage.
func (d *dequeArena) reset(n, capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	d.capacity = capacity
	d.idx = core.EnsureLen(d.idx, n*capacity)
	d.head = core.Fill(d.head, n, 0)
	d.size = core.Fill(d.size, n, 0)
}

func (d *dequeArena) len(c int) int {
	return d.size[c]
}

func (d *dequeArena) front(c int) int {
	return d.idx[c*d.capacity+d.head[c]]
}

func (d *dequeArena) back(c int) int {
	pos := d.head[c] + d.size[c] - 1
	if pos >= d.capacity {
		pos -= d.capacity
	}
	return d.idx[c*d.capacity+pos]
}

func (d *dequeArena) popFront(c int) {
	d.head[c]++
	if d.head[c] == d.capacity {
		d.head[c] = 0
	}
	d.size[c]--
}

func (d *dequeArena) popBack(c int) {
	d.size[c]--
}

// pushBack appends t. The caller keeps size below capacity.
func (d *dequeArena) pushBack(c, t int) {
	pos := d.head[c] + d.size[c]
	if pos >= d.capacity {
		pos -= d.capacity
	}
	d.idx[c*d.capacity+pos] = t
	d.size[c]++
}
