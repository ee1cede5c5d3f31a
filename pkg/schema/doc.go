// Package schema defines the metrics schema data model: metric kinds,
// tag definitions, metric definitions, and the namespace tree that
// holds them.
//
// A schema is a tree of namespaces. Each namespace owns tag definitions,
// metric definitions, and child namespaces. Tags declared on a namespace
// are visible to that namespace and all of its descendants unless a
// descendant shadows them with its own declaration. A metric's
// fully-qualified name is the dot-joined path of namespace names
// (excluding the synthetic root) followed by the local metric name.
//
// The tree is built once by pkg/schema/builder and is thereafter
// immutable: add operations return new nodes instead of mutating shared
// state, so the finished tree is safe for unsynchronized concurrent
// reads from any number of validation call sites.
package schema
