// Package builder compiles declarative YAML schema documents into
// immutable namespace trees.
//
// A schema document is a namespace: it declares tags, metrics, and
// nested namespaces. The builder resolves nested namespace scoping and
// metric tag shorthand, preserves source locations for error reporting,
// and accumulates structural errors instead of failing on the first one.
//
// Schema shape:
//
//	version: "1.0"
//	name: web
//	tags:
//	  environment:
//	    values: [production, staging, development]
//	    transform: [downcase]
//	namespaces:
//	  requests:
//	    tags:
//	      service:
//	        values: [api, worker]
//	    metrics:
//	      total:
//	        type: counter
//	        required_tags: [environment]
//	        allowed_tags: [environment, service]
//	      duration:
//	        type: distribution
//	        inherit_tags: web.requests.total
//
// Tag value shorthand: a "values" list declares an enumeration, a
// "pattern" string declares a regular-expression matcher, and omitting
// both leaves the tag unrestricted. Omitting "allowed_tags" leaves a
// metric unrestricted; an explicit empty list declares that the metric
// accepts no tags at all.
package builder
