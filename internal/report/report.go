// Package report summarizes the outcome of reading and validating one
// feed document and renders that summary in several formats.
package report

import (
	"time"

	"github.com/pders01/jfeed/internal/jsonfeed"
	"github.com/pders01/jfeed/internal/validation"
)

// Report is the result of checking a single source.
type Report struct {
	Source       string               `json:"source" yaml:"source" toml:"source"`
	Valid        bool                 `json:"valid" yaml:"valid" toml:"valid"`
	Errors       []string             `json:"errors" yaml:"errors" toml:"errors"`
	ParseErrors  []string             `json:"parse_errors" yaml:"parse_errors" toml:"parse_errors"`
	UnmappedKeys int                  `json:"unmapped_keys" yaml:"unmapped_keys" toml:"unmapped_keys"`
	Findings     []validation.Finding `json:"findings" yaml:"findings" toml:"findings"`
	Items        int                  `json:"items" yaml:"items" toml:"items"`
	CheckedAt    time.Time            `json:"checked_at" yaml:"checked_at" toml:"checked_at"`
}

// Options controls how a report is built.
type Options struct {
	// Strict runs the lint checks and fails the report on any finding.
	Strict bool
	Lint   validation.LintOptions
	// Now stamps CheckedAt; time.Now when nil.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// Build validates f and gathers everything recorded while it was parsed.
// Parse errors and unmapped keys are informational and never make a
// report invalid.
func Build(source string, f *jsonfeed.Feed, opts Options) *Report {
	r := &Report{
		Source:      source,
		Errors:      []string{},
		ParseErrors: []string{},
		Findings:    []validation.Finding{},
		CheckedAt:   opts.now(),
	}
	if f == nil {
		r.Errors = append(r.Errors, jsonfeed.ErrNilDocument.Error())
		return r
	}

	_ = f.Validate()
	r.Errors = append(r.Errors, f.ValidationErrors()...)
	r.Items = len(f.Items)

	jsonfeed.Walk(f, func(e jsonfeed.Entity) {
		for _, err := range e.ParseErrors() {
			r.ParseErrors = append(r.ParseErrors, err.Error())
		}
		r.UnmappedKeys += e.UnmappedKeyCount()
	})

	if opts.Strict {
		r.Findings = append(r.Findings, validation.LintFeed(f, opts.Lint)...)
	}

	r.Valid = len(r.Errors) == 0 && (!opts.Strict || len(r.Findings) == 0)
	return r
}

// FromError reports a source that could not be read or decoded at all.
func FromError(source string, err error, opts Options) *Report {
	return &Report{
		Source:      source,
		Errors:      []string{err.Error()},
		ParseErrors: []string{},
		Findings:    []validation.Finding{},
		CheckedAt:   opts.now(),
	}
}

// Summary counts the reports that passed and failed.
func Summary(reports []*Report) (passed, failed int) {
	for _, r := range reports {
		if r.Valid {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}
