// Package process defines the vocabulary shared by the scheduler and its
// observers: process states, priorities, entry functions, and the immutable
// snapshots published to dumps, events and the accounting store.
package process
