package machine

// PSR bits.
const (
	// PSRCurrentMode is set while the machine runs in kernel mode.
	PSRCurrentMode uint32 = 0x1
	// PSRCurrentInt is set while interrupts are enabled.
	PSRCurrentInt uint32 = 0x2
)

// Mode represents the privilege level of the running context.
type Mode string

const (
	ModeUser   Mode = "user"
	ModeKernel Mode = "kernel"
)

// PSR returns the current processor status register.
func (m *Machine) PSR() uint32 {
	return m.psr.Load()
}

// SetPSR replaces the processor status register.
func (m *Machine) SetPSR(psr uint32) {
	if m.IsHalted() {
		return
	}
	m.psr.Store(psr)
}

// Mode returns the privilege level of the running context.
func (m *Machine) Mode() Mode {
	if m.psr.Load()&PSRCurrentMode != 0 {
		return ModeKernel
	}
	return ModeUser
}

// SetMode switches the running context to the given privilege level.
func (m *Machine) SetMode(mode Mode) {
	psr := m.psr.Load()
	if mode == ModeKernel {
		psr |= PSRCurrentMode
	} else {
		psr &^= PSRCurrentMode
	}
	m.SetPSR(psr)
}

// InterruptsEnabled reports whether the interrupt-enable bit is set.
func (m *Machine) InterruptsEnabled() bool {
	return m.psr.Load()&PSRCurrentInt != 0
}

// DisableInterrupts clears the interrupt-enable bit and returns the previous
// PSR, to be handed back to RestorePSR.
func (m *Machine) DisableInterrupts() uint32 {
	old := m.psr.Load()
	m.SetPSR(old &^ PSRCurrentInt)
	return old
}

// EnableInterrupts sets the interrupt-enable bit and returns the previous PSR.
func (m *Machine) EnableInterrupts() uint32 {
	old := m.psr.Load()
	m.SetPSR(old | PSRCurrentInt)
	return old
}

// RestorePSR restores a PSR saved by DisableInterrupts or EnableInterrupts.
// It is a no-op once the machine has halted, when parked contexts unwind.
func (m *Machine) RestorePSR(psr uint32) {
	m.SetPSR(psr)
}
