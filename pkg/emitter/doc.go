// Package emitter is the governed entry point for metric emissions.
//
// Every call merges configured default tags with call-site tags, runs
// the emission through the schema validator, applies the configured
// failure policy (strict, warn, drop, off), and forwards accepted
// emissions to the sink. Validation never mutates an emission: a
// forwarded metric carries exactly the name and tags the caller
// provided plus the configured defaults.
package emitter
