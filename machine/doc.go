// Package machine simulates the single-CPU host the scheduler runs on.
//
// It provides the capabilities the kernel consumes but does not implement:
//
//   - a processor status register (PSR) holding the current mode and the
//     interrupt-enable bit
//   - execution contexts bound to a stack and an entry function, and an
//     atomic context switch between them
//   - stack memory with poisoning and double-free detection
//   - a console for diagnostics and a halt operation stopping the machine
//   - a periodic clock tick, delivered as a pending interrupt
//
// Every context runs on its own goroutine, but only the goroutine holding the
// machine's baton executes: Switch hands the baton to the target context and
// parks the caller until it is switched back into.  Scheduler state therefore
// needs no locking as long as it is touched only from a running context.
package machine
