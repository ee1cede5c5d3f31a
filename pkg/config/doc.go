// Package config loads, defaults, validates, and holds the process-wide
// configuration for metricgov.
//
// Configuration is read from a YAML file, overlaid with METRICGOV_*
// environment variables, validated as a whole (all field errors are
// collected and reported together), and optionally installed as a
// process-wide singleton guarded for concurrent first-time
// initialization. Components receive the resolved Config by reference;
// nothing in the core re-reads the environment.
package config
