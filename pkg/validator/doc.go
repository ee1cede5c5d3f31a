// Package validator checks metric emissions against a compiled schema.
//
// The runtime validator is consulted on every emission (the hot path).
// Each check runs a fixed pipeline: metric lookup, kind check, tag
// presence check, tag value check. The first failure wins and
// short-circuits the rest. Validation is pure computation over the
// immutable namespace tree: no I/O, no shared mutable state, safe for
// unsynchronized concurrent use.
//
// How a failure is acted on is a policy of the call context, not of the
// schema: strict aborts the emission, warn logs and forwards, drop
// discards silently, off skips validation entirely. The policy is
// applied by pkg/emitter; this package only reports the failure.
//
// The structural validator is the complementary build-time pass: it
// confirms every tag name a metric references is declared somewhere
// visible in the metric's namespace chain.
package validator
