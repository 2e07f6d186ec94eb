package scheduler

import "github.com/viant/kernel/model/process"

// runQueue is an intrusive FIFO of table slots linked through pcb.next.
type runQueue struct {
	head int
	tail int
	size int
}

// runQueues holds one FIFO per priority level; only READY blocks are queued.
type runQueues struct {
	levels [process.Levels]runQueue
	table  *table
}

func newRunQueues(t *table) *runQueues {
	ret := &runQueues{table: t}
	for i := range ret.levels {
		ret.levels[i] = runQueue{head: none, tail: none}
	}
	return ret
}

// enqueue appends slot to the tail of its priority's queue.
func (q *runQueues) enqueue(slot int) {
	p := &q.table.slots[slot]
	level := &q.levels[p.priority.Index()]
	p.next = none
	p.queued = true
	if level.tail == none {
		level.head = slot
	} else {
		q.table.slots[level.tail].next = slot
	}
	level.tail = slot
	level.size++
}

// dequeueHighest pops the head of the most urgent non-empty queue, or
// returns none.
func (q *runQueues) dequeueHighest() int {
	for i := range q.levels {
		level := &q.levels[i]
		if level.head == none {
			continue
		}
		slot := level.head
		p := &q.table.slots[slot]
		level.head = p.next
		if level.head == none {
			level.tail = none
		}
		level.size--
		p.next = none
		p.queued = false
		return slot
	}
	return none
}

// highest returns the most urgent non-empty level, or 0 when all are empty.
func (q *runQueues) highest() process.Priority {
	for i := range q.levels {
		if q.levels[i].head != none {
			return process.Priority(i + 1)
		}
	}
	return 0
}

// remove unlinks slot from its queue; it reports whether slot was queued.
func (q *runQueues) remove(slot int) bool {
	p := &q.table.slots[slot]
	if !p.queued {
		return false
	}
	level := &q.levels[p.priority.Index()]
	prev := none
	for cur := level.head; cur != none; cur = q.table.slots[cur].next {
		if cur != slot {
			prev = cur
			continue
		}
		if prev == none {
			level.head = p.next
		} else {
			q.table.slots[prev].next = p.next
		}
		if level.tail == slot {
			level.tail = prev
		}
		level.size--
		p.next = none
		p.queued = false
		return true
	}
	return false
}

// members returns the slots queued at level index i, head first.
func (q *runQueues) members(i int) []int {
	var ret []int
	for cur := q.levels[i].head; cur != none; cur = q.table.slots[cur].next {
		ret = append(ret, cur)
	}
	return ret
}

func (q *runQueues) len() int {
	total := 0
	for i := range q.levels {
		total += q.levels[i].size
	}
	return total
}
