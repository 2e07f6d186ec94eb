package machine

import (
	"errors"
	"sync"
)

// ErrDoubleFree is returned when a stack is released twice.
var ErrDoubleFree = errors.New("stack already freed")

// Stack is a region of memory owned by one process.
type Stack struct {
	ID    int
	Mem   []byte
	Frees int
}

// Size returns the stack size in bytes.
func (s *Stack) Size() int {
	return len(s.Mem)
}

// Freed reports whether the stack was released.
func (s *Stack) Freed() bool {
	return s.Frees > 0
}

// MemoryStats summarises allocator activity.
type MemoryStats struct {
	Allocated int
	Freed     int
	Live      int
	LiveBytes int
}

// Memory allocates process stacks.  Freed stacks are overwritten with the
// poison byte so that a later use is detectable.
type Memory struct {
	mu     sync.Mutex
	poison byte
	nextID int
	stacks []*Stack
	stats  MemoryStats
}

// NewMemory creates an allocator poisoning freed stacks with poison.
func NewMemory(poison byte) *Memory {
	return &Memory{poison: poison}
}

// Alloc returns a zeroed stack of size bytes.
func (m *Memory) Alloc(size int) *Stack {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ret := &Stack{ID: m.nextID, Mem: make([]byte, size)}
	m.stacks = append(m.stacks, ret)
	m.stats.Allocated++
	m.stats.Live++
	m.stats.LiveBytes += size
	return ret
}

// Free releases the stack and poisons its memory.
func (m *Memory) Free(s *Stack) error {
	if s == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s.Frees++
	if s.Frees > 1 {
		return ErrDoubleFree
	}
	for i := range s.Mem {
		s.Mem[i] = m.poison
	}
	m.stats.Freed++
	m.stats.Live--
	m.stats.LiveBytes -= len(s.Mem)
	return nil
}

// IsPoisoned reports whether every byte of the stack holds the poison byte.
func (m *Memory) IsPoisoned(s *Stack) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range s.Mem {
		if b != m.poison {
			return false
		}
	}
	return true
}

// Stats returns allocator counters.
func (m *Memory) Stats() MemoryStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// Stacks returns every stack allocated so far, in allocation order.
func (m *Memory) Stacks() []*Stack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Stack(nil), m.stacks...)
}
