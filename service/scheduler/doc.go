// Package scheduler implements the kernel's process scheduler: a fixed
// process table, six FIFO run queues, the dispatcher, the spork/join/quit
// lifecycle, block/unblock and zap.
//
// All primitives are called from inside a running process (a goroutine
// holding the machine's baton).  Each saves the PSR, disables interrupts for
// its critical section and restores the saved PSR on every exit path.
// Contract violations write an ERROR diagnostic to the machine console and
// halt the machine; request errors are returned to the caller with the
// scheduler state unchanged.
//
// Typical wiring:
//
//	m := machine.New()
//	srv, _ := scheduler.New(m, scheduler.WithTestcase(testcaseMain, nil))
//	srv.Init()
//	srv.Start()
//	halt, _ := m.Wait(ctx)
package scheduler
