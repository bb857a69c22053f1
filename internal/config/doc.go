// Package config centralizes configuration and path resolution for the
// people-analytics pipeline.
//
// Configuration is layered: YAML file (peoplecli.yaml in the base
// directory), then environment variables with the PEOPLE_ prefix, then
// struct defaults. The Paths type is the single source of truth for
// every file the pipeline reads or writes; stages never construct
// output paths themselves.
package config
