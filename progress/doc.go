// Package progress keeps per-run process counters. The tracker travels in the
// run context so the scheduler can update it without a global registry.
package progress
