package scheduler

import (
	"fmt"
	"strings"

	"github.com/viant/kernel/model/process"
)

// Processes returns a snapshot of every occupied slot, in slot order.
func (s *Service) Processes() []process.Info {
	var ret []process.Info
	for i := range s.table.slots {
		if s.table.slots[i].isEmpty() {
			continue
		}
		ret = append(ret, s.info(i))
	}
	return ret
}

// Process returns a snapshot of pid.
func (s *Service) Process(pid int) (process.Info, bool) {
	slot := s.table.lookup(pid)
	if slot == none {
		return process.Info{}, false
	}
	return s.info(slot), true
}

func (s *Service) info(slot int) process.Info {
	p := &s.table.slots[slot]
	ret := process.Info{
		PID:        p.pid,
		Name:       p.name,
		Priority:   p.priority,
		State:      p.state,
		WaitReason: p.waitReason,
		ExitStatus: p.exitStatus,
		CPUTime:    p.cpuTime,
	}
	if p.parent != none {
		ret.ParentPID = s.table.slots[p.parent].pid
	}
	return ret
}

// DumpProcesses writes the process table to the machine console.
func (s *Service) DumpProcesses() {
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	s.machine.Console(" PID  PPID  NAME              PRIORITY  STATE\n")
	for _, info := range s.Processes() {
		s.machine.Console("%4d %5d  %-16s %4d      %s\n", info.PID, info.ParentPID, info.Name, info.Priority, info.StateLabel())
	}
}

// DumpRunQueues writes the content of every run queue to the machine console.
func (s *Service) DumpRunQueues() {
	psr := s.machine.DisableInterrupts()
	defer s.machine.RestorePSR(psr)
	for i := range s.queues.levels {
		members := s.queues.members(i)
		if len(members) == 0 {
			s.machine.Console("priority %d: (empty)\n", i+1)
			continue
		}
		var items []string
		for _, slot := range members {
			p := &s.table.slots[slot]
			items = append(items, fmt.Sprintf("%s(%d)", p.name, p.pid))
		}
		s.machine.Console("priority %d: %s\n", i+1, strings.Join(items, " -> "))
	}
}
