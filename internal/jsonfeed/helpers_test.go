package jsonfeed

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pders01/jfeed/internal/document"
)

type recordingDiagnostics struct {
	debug, warn, errs []string
}

func (r *recordingDiagnostics) Debugf(format string, args ...any) {
	r.debug = append(r.debug, fmt.Sprintf(format, args...))
}

func (r *recordingDiagnostics) Warnf(format string, args ...any) {
	r.warn = append(r.warn, fmt.Sprintf(format, args...))
}

func (r *recordingDiagnostics) Errorf(format string, args ...any) {
	r.errs = append(r.errs, fmt.Sprintf(format, args...))
}

func mustDoc(t *testing.T, s string) *document.Object {
	t.Helper()
	doc, err := document.Parse([]byte(s))
	require.NoError(t, err)
	return doc
}
