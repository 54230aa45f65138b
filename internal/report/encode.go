package report

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json, yaml or toml)", s)
	}
}

// Encoder writes reports in one format.
type Encoder struct {
	Format Format
	Color  bool
	// Verbose lists parse errors in text output; they are always present in
	// the structured formats.
	Verbose bool
}

// document is the top-level shape of the structured formats. TOML requires
// a table at the root, so the list is always wrapped.
type document struct {
	Reports []*Report `json:"reports" yaml:"reports" toml:"reports"`
	Passed  int       `json:"passed" yaml:"passed" toml:"passed"`
	Failed  int       `json:"failed" yaml:"failed" toml:"failed"`
}

// Encode writes reports to w.
func (e Encoder) Encode(w io.Writer, reports []*Report) error {
	passed, failed := Summary(reports)
	doc := document{Reports: reports, Passed: passed, Failed: failed}
	if doc.Reports == nil {
		doc.Reports = []*Report{}
	}

	switch e.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatText, "":
		return e.encodeText(w, reports, passed, failed)
	default:
		return fmt.Errorf("unknown output format %q", e.Format)
	}
}

func (e Encoder) encodeText(w io.Writer, reports []*Report, passed, failed int) error {
	st := newStyles(w, e.Color)
	var b strings.Builder

	for _, r := range reports {
		status := st.pass.Render("ok")
		if !r.Valid {
			status = st.fail.Render("FAIL")
		}
		fmt.Fprintf(&b, "%s %s", status, st.source.Render(r.Source))
		fmt.Fprintf(&b, " %s\n", st.muted.Render(fmt.Sprintf("(%d items, %d unmapped keys)", r.Items, r.UnmappedKeys)))

		for _, msg := range r.Errors {
			fmt.Fprintf(&b, "  %s %s\n", st.err.Render("error"), msg)
		}
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "  %s %s\n", st.finding.Render("lint "), f)
		}
		if e.Verbose {
			for _, msg := range r.ParseErrors {
				fmt.Fprintf(&b, "  %s %s\n", st.parse.Render("parse"), msg)
			}
		} else if n := len(r.ParseErrors); n > 0 {
			fmt.Fprintf(&b, "  %s\n", st.muted.Render(fmt.Sprintf("%d values dropped while parsing", n)))
		}
	}

	if len(reports) > 1 {
		fmt.Fprintf(&b, "%s\n", st.muted.Render(fmt.Sprintf("%d passed, %d failed", passed, failed)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
