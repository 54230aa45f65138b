package jsonfeed

import (
	"fmt"
	"strings"

	"github.com/pders01/jfeed/internal/document"
)

// Extension is a publisher-defined object stored under a "_"-prefixed key.
// Its payload is opaque to the feed model and is written back unchanged,
// except that null members are dropped.
type Extension struct {
	values *document.Object
}

// NewExtension returns an empty extension.
func NewExtension() *Extension {
	return &Extension{values: document.New()}
}

// ParseExtension moves every key of doc into a new extension.
func ParseExtension(doc *document.Object) (*Extension, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	ext := NewExtension()
	for _, k := range doc.Keys() {
		v, _ := doc.Get(k)
		doc.Remove(k)
		ext.values.Put(k, v)
	}
	return ext, nil
}

// Set stores value under key.
func (e *Extension) Set(key string, value any) {
	if e.values == nil {
		e.values = document.New()
	}
	e.values.Put(key, value)
}

// Get returns the value stored under key.
func (e *Extension) Get(key string) (any, bool) {
	return e.values.Get(key)
}

// Keys returns the payload keys in insertion order.
func (e *Extension) Keys() []string {
	return e.values.Keys()
}

// Len returns the number of payload keys.
func (e *Extension) Len() int {
	return e.values.Len()
}

// ToDocument returns a copy of the payload.
func (e *Extension) ToDocument() *document.Object {
	if e == nil {
		return nil
	}
	return compact(e.values)
}

func (e *Extension) String() string {
	return e.ToDocument().String()
}

// Validate checks the payload key names: none may start with "_" or
// contain ".". Each offending key produces one error per broken rule.
func (e *Extension) Validate() error {
	if e == nil {
		return nil
	}
	var errs []string
	for _, key := range e.values.Keys() {
		if strings.HasPrefix(key, ExtensionPrefix) {
			errs = append(errs, fmt.Sprintf("[%s] key '%s' must not start with an underscore character '_'", entityExtension, key))
		}
		if strings.Contains(key, ".") {
			errs = append(errs, fmt.Sprintf("[%s] key '%s' must not contain a full-stop character '.'", entityExtension, key))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Entity: entityExtension, Errors: errs}
}

// compact deep-copies obj, dropping null members at every object level.
func compact(obj *document.Object) *document.Object {
	out := document.New()
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		if v == nil {
			continue
		}
		out.Put(k, compactValue(v))
	}
	return out
}

func compactValue(v any) any {
	switch t := v.(type) {
	case *document.Object:
		return compact(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = compactValue(e)
		}
		return out
	default:
		return v
	}
}

// Extensions is an ordered set of extensions keyed by their "_"-prefixed
// name. The zero value is empty and ready to use.
type Extensions struct {
	names  []string
	byName map[string]*Extension
}

// Add stores ext under name. Names outside the "_" namespace are rejected.
func (x *Extensions) Add(name string, ext *Extension) error {
	if !strings.HasPrefix(name, ExtensionPrefix) {
		return fmt.Errorf("%w: %q", ErrExtensionName, name)
	}
	if ext == nil {
		ext = NewExtension()
	}
	x.put(name, ext)
	return nil
}

func (x *Extensions) put(name string, ext *Extension) {
	if x.byName == nil {
		x.byName = make(map[string]*Extension)
	}
	if _, ok := x.byName[name]; !ok {
		x.names = append(x.names, name)
	}
	x.byName[name] = ext
}

// Get returns the extension stored under name, or nil.
func (x *Extensions) Get(name string) *Extension {
	return x.byName[name]
}

// Remove deletes the extension stored under name.
func (x *Extensions) Remove(name string) {
	if _, ok := x.byName[name]; !ok {
		return
	}
	delete(x.byName, name)
	for i, n := range x.names {
		if n == name {
			x.names = append(x.names[:i], x.names[i+1:]...)
			break
		}
	}
}

// Names returns the extension names in insertion order.
func (x *Extensions) Names() []string {
	return append([]string(nil), x.names...)
}

// Len returns the number of extensions.
func (x *Extensions) Len() int {
	return len(x.names)
}

func (x *Extensions) writeTo(doc *document.Object) {
	for _, name := range x.names {
		writeIfPresent(doc, name, x.byName[name].ToDocument())
	}
}

func (x *Extensions) validate(v *validator) {
	for _, name := range x.names {
		v.child(x.byName[name].Validate())
	}
}
