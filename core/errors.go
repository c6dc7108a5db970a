package core

import (
	"errors"
	"fmt"
)

// ErrUnsupported is returned when a jurisdiction lacks a capability.
var ErrUnsupported = errors.New("not supported by jurisdiction")

// ParseError reports input bytes that could not be parsed at all.
type ParseError struct {
	Kind string // "html" or "pdf"
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Kind, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingSectionError reports an absent structural anchor for one entity.
type MissingSectionError struct {
	Entity  string
	Section string
	URL     string
}

func (e *MissingSectionError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s: missing section %q at %s", e.Entity, e.Section, e.URL)
	}
	return fmt.Sprintf("%s: missing section %q", e.Entity, e.Section)
}

// MalformedRowError reports a row whose fragment count matches no known schema.
type MalformedRowError struct {
	Row       int
	Fragments []string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("row %d: %d fragments match no known schema %q", e.Row, len(e.Fragments), e.Fragments)
}

// UnknownCommitteeError reports a joint committee with no handling strategy.
type UnknownCommitteeError struct {
	Name string
	URL  string
}

func (e *UnknownCommitteeError) Error() string {
	return fmt.Sprintf("unknown committee: %s %s", e.Name, e.URL)
}

// ConfigError is a run-level precondition failure. It aborts the run
// before any extraction happens.
type ConfigError struct {
	Jurisdiction string
	Msg          string
}

func (e *ConfigError) Error() string {
	if e.Jurisdiction == "" {
		return "config: " + e.Msg
	}
	return fmt.Sprintf("config: %s: %s", e.Jurisdiction, e.Msg)
}

// EntityError attaches the entity being built to a builder failure.
type EntityError struct {
	Entity string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

func (e *EntityError) Unwrap() error { return e.Err }
