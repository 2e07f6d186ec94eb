package scheduler

// table is the fixed-capacity arena of process control blocks, addressed by
// pid modulo its capacity.
type table struct {
	slots   []pcb
	nextPID int
}

func newTable(size int) *table {
	ret := &table{slots: make([]pcb, size), nextPID: InitPID + 1}
	for i := range ret.slots {
		ret.slots[i].reset()
	}
	return ret
}

func (t *table) slotOf(pid int) int {
	return pid % len(t.slots)
}

// lookup returns the slot holding pid, or none.
func (t *table) lookup(pid int) int {
	if pid < 0 {
		return none
	}
	slot := t.slotOf(pid)
	p := &t.slots[slot]
	if p.isEmpty() || p.pid != pid {
		return none
	}
	return slot
}

// findFree scans one full pass of candidate pids starting at nextPID and
// returns the first whose slot is empty.  The generator is not advanced; see
// commit.
func (t *table) findFree() (pid, slot int, ok bool) {
	candidate := t.nextPID
	for i := 0; i < len(t.slots); i++ {
		slot = t.slotOf(candidate)
		if t.slots[slot].isEmpty() {
			return candidate, slot, true
		}
		candidate++
	}
	return none, none, false
}

func (t *table) commit(pid int) {
	t.nextPID = pid + 1
}

// unlinkChild removes child from parent's sibling chain.
func (t *table) unlinkChild(parent, child int) {
	pp := &t.slots[parent]
	if pp.firstChild == child {
		pp.firstChild = t.slots[child].nextSibling
	} else {
		for prev := pp.firstChild; prev != none; prev = t.slots[prev].nextSibling {
			if t.slots[prev].nextSibling == child {
				t.slots[prev].nextSibling = t.slots[child].nextSibling
				break
			}
		}
	}
	t.slots[child].nextSibling = none
}
