// Package config defines the format-agnostic model for per-package task
// configuration, along with the Loader interface for reading it from
// various sources.
//
// A Config is the parsed content of one package's taskgrid.json (or an
// in-memory equivalent). It is the single source of truth for the taskdef
// and builder packages. Concrete Loader implementations live in separate
// packages (jsonconfig, memconfig).
package config
