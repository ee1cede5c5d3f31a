// Metricgov is a schema-governed metrics toolchain.
//
// It compiles a declarative YAML schema of namespaces, tags, and metric
// definitions, validates metric emissions against it at runtime, and
// estimates the billable cardinality of everything the schema declares.
//
// Usage:
//
//	# Estimate the cardinality cost of a schema
//	metricgov analyze --file metrics-schema.yaml
//
//	# Validate schema files
//	metricgov lint --file metrics-schema.yaml
//
//	# Watch a schema for changes and re-analyze on every edit
//	metricgov watch --config config.yaml
//
//	# Inspect stored analysis runs
//	metricgov history list
//
//	# Show version information
//	metricgov version
package main

func main() {
	Execute()
}
