// Package kernel runs a cooperative priority process scheduler on a simulated
// single-CPU machine.
//
// The root package wires the layers together:
//
//   - machine   – PSR, execution contexts, stack memory, console, clock, halt
//   - scheduler – process table, run queues, dispatcher and the process
//     primitives (spork, join, quit, block, unblock, zap)
//   - event     – optional lifecycle events delivered to a listener
//   - dao/exit  – optional accounting of joined processes (memory or afs)
//   - tracing   – OpenTelemetry spans per run and per process
//
// Typical use:
//
//	srv, _ := kernel.New()
//	halt, err := srv.Run(ctx, func(arg interface{}) int {
//		k := srv.Scheduler()
//		pid, _ := k.Spork("worker", worker, nil, scheduler.MinStack, 4)
//		_, status, _ := k.Join()
//		return status
//	}, nil)
//
// Run returns once the machine halts; halt.Code is the testcase's exit status
// or 1 after a fatal kernel diagnostic.
package kernel
