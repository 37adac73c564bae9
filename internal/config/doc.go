// Package config loads dhallgen job files.
//
// A job file lists generation targets: each one names a source (a file or
// an inline expression), what to generate from it (an embedded value or a
// sum-type declaration) and where to write the result. Job files are read
// with viper, so YAML, TOML and JSON all work, and top-level settings can
// be overridden with DHALLGEN_* environment variables.
//
// Example:
//
//	package: cfg
//	output: ./generated
//	targets:
//	  - kind: embed
//	    name: Server
//	    source: ./server.dhall
//	  - kind: union
//	    name: Shape
//	    source: ./shape.dhall
//	    format: yaml
package config
