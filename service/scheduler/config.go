package scheduler

import (
	"fmt"
	"time"

	"github.com/viant/kernel/model/process"
)

const (
	// MaxName is the longest accepted process name.
	MaxName = 50
	// InitPID is the pid of the root process.
	InitPID = 1
	// MinStack is the default minimum stack size.
	MinStack = 80 * 1024
)

// Config represents scheduler configuration
type Config struct {
	// MaxProc is the number of process table slots.
	MaxProc int
	// MinStack is the smallest stack spork accepts.
	MinStack int
	// Quantum is the CPU time a process may use before it is requeued.
	Quantum time.Duration
	// Testcase describes the process init creates.
	Testcase TestcaseConfig
}

// TestcaseConfig describes the first user process.
type TestcaseConfig struct {
	Name      string
	Priority  process.Priority
	StackSize int
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		MaxProc:  50,
		MinStack: MinStack,
		Quantum:  80 * time.Millisecond,
		Testcase: TestcaseConfig{
			Name:      "testcase_main",
			Priority:  3,
			StackSize: MinStack,
		},
	}
}

// Validate returns an error describing the first invalid setting.
func (c *Config) Validate() error {
	if c.MaxProc < 2 {
		return fmt.Errorf("maxProc must be >= 2, got %d", c.MaxProc)
	}
	if c.MinStack <= 0 {
		return fmt.Errorf("minStack must be > 0, got %d", c.MinStack)
	}
	if c.Quantum <= 0 {
		return fmt.Errorf("quantum must be > 0, got %v", c.Quantum)
	}
	if !c.Testcase.Priority.IsValid() {
		return fmt.Errorf("testcase priority must be in [%d,%d], got %d", process.PriorityHighest, process.PriorityLowest, c.Testcase.Priority)
	}
	if c.Testcase.StackSize < c.MinStack {
		return fmt.Errorf("testcase stack %d below minStack %d", c.Testcase.StackSize, c.MinStack)
	}
	return nil
}
