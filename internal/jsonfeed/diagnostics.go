package jsonfeed

// Diagnostics receives advisory messages produced while parsing: dropped
// malformed values, excluded array elements and unmapped keys. It never
// influences the outcome of Validate.
type Diagnostics interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type nopDiagnostics struct{}

func (nopDiagnostics) Debugf(string, ...any) {}
func (nopDiagnostics) Warnf(string, ...any)  {}
func (nopDiagnostics) Errorf(string, ...any) {}

type parseOptions struct {
	diag Diagnostics
}

// Option configures parsing.
type Option func(*parseOptions)

// WithDiagnostics routes parse diagnostics to d. A nil d discards them.
func WithDiagnostics(d Diagnostics) Option {
	return func(o *parseOptions) { o.diag = d }
}

func buildOptions(opts []Option) parseOptions {
	o := parseOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.diag == nil {
		o.diag = nopDiagnostics{}
	}
	return o
}
