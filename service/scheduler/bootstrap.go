package scheduler

import (
	"errors"
	"fmt"
)

// bootstrap is the body of init.  It runs the service starters, creates the
// testcase process and reaps children until the testcase has been joined,
// then halts the machine with the testcase's exit status.
func (s *Service) bootstrap(interface{}) int {
	for _, start := range s.starters {
		start(s)
	}
	tc := s.config.Testcase
	pid, err := s.Spork(tc.Name, s.testcase, s.testcaseArg, tc.StackSize, tc.Priority)
	if err != nil {
		s.machine.Fatalf("Failed to create %s process: %v\n", tc.Name, err)
	}
	for {
		joined, status, err := s.Join()
		if errors.Is(err, ErrNoChildren) {
			s.machine.Fatalf("init lost track of %s (pid %d)\n", tc.Name, pid)
		}
		if joined != pid {
			continue
		}
		s.machine.Console("%s() returned %d, simulation will now halt.\n", tc.Name, status)
		s.machine.Halt(status, fmt.Sprintf("%s returned %d", tc.Name, status))
	}
}
