package jsonfeed

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pders01/jfeed/internal/document"
)

// Entity is implemented by every record type in the feed model.
type Entity interface {
	ToDocument() *document.Object
	String() string
	Validate() error
	ValidationErrors() []string
	UnmappedKeyCount() int
	ParseErrors() []error
}

var (
	_ Entity = (*Feed)(nil)
	_ Entity = (*Item)(nil)
	_ Entity = (*Author)(nil)
	_ Entity = (*Attachment)(nil)
	_ Entity = (*Hub)(nil)
)

// state is embedded in every entity. It holds the extensions found while
// parsing and the bookkeeping for the three reporting channels.
type state struct {
	extensions       Extensions
	unmappedKeys     int
	parseErrors      []error
	validationErrors []string
}

// Extensions returns the entity's extensions in document order.
func (s *state) Extensions() *Extensions {
	return &s.extensions
}

// Extension returns the extension stored under name, or nil.
func (s *state) Extension(name string) *Extension {
	return s.extensions.Get(name)
}

// AddExtension stores ext under name, which must start with "_".
func (s *state) AddExtension(name string, ext *Extension) error {
	return s.extensions.Add(name, ext)
}

// UnmappedKeyCount returns how many keys of the source document matched
// neither a known field nor the extension pattern.
func (s *state) UnmappedKeyCount() int {
	return s.unmappedKeys
}

// ParseErrors returns the values dropped while parsing this entity.
func (s *state) ParseErrors() []error {
	return append([]error(nil), s.parseErrors...)
}

// ValidationErrors returns the violations found by the last Validate call.
func (s *state) ValidationErrors() []string {
	return append([]string(nil), s.validationErrors...)
}

// binder drains a source document into typed fields. Every read removes
// its key, whether or not a usable value was found.
type binder struct {
	doc    *document.Object
	entity string
	opts   parseOptions
	st     *state
}

func newBinder(doc *document.Object, entity string, opts parseOptions, st *state) *binder {
	st.unmappedKeys = 0
	st.parseErrors = nil
	return &binder{doc: doc, entity: entity, opts: opts, st: st}
}

func (b *binder) diag() Diagnostics {
	return b.opts.diag
}

// consume removes key and returns its value. JSON null counts as absent.
func (b *binder) consume(key string) (any, bool) {
	v, ok := b.doc.Get(key)
	b.doc.Remove(key)
	if ok {
		b.diag().Debugf("[%s] key '%s' removed from document", b.entity, key)
	}
	return v, ok && v != nil
}

func (b *binder) malformed(key string, value any, err error) {
	b.st.parseErrors = append(b.st.parseErrors, &FieldError{Entity: b.entity, Key: key, Value: value, Err: err})
	b.diag().Errorf("[%s] could not read key '%s' with value '%v': %v", b.entity, key, value, err)
}

func (b *binder) readString(key string) string {
	v, ok := b.consume(key)
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		b.malformed(key, v, fmt.Errorf("%w: expected string", ErrMalformedField))
		return ""
	}
	return s
}

// readID is readString that also accepts numbers, which readers are
// required to coerce to strings.
func (b *binder) readID(key string) string {
	v, ok := b.consume(key)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b.malformed(key, v, fmt.Errorf("%w: expected string or number", ErrMalformedField))
		return ""
	}
}

func (b *binder) readInt64(key string) *int64 {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	n, err := toInt64(v)
	if err != nil {
		b.malformed(key, v, err)
		return nil
	}
	return &n
}

func toInt64(v any) (int64, error) {
	var s string
	switch t := v.(type) {
	case json.Number:
		s = t.String()
	case string:
		s = strings.TrimSpace(t)
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return 0, fmt.Errorf("%w: expected integer", ErrMalformedField)
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("%w: expected integer", ErrMalformedField)
	}
	return int64(f), nil
}

func (b *binder) readBool(key string) *bool {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return &t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true":
			val := true
			return &val
		case "false":
			val := false
			return &val
		}
	}
	b.malformed(key, v, fmt.Errorf("%w: expected boolean", ErrMalformedField))
	return nil
}

var errFractionalSeconds = errors.New("fractional seconds")

func (b *binder) readTime(key string) time.Time {
	v, ok := b.consume(key)
	if !ok {
		return time.Time{}
	}
	s, isString := v.(string)
	if !isString {
		b.malformed(key, v, fmt.Errorf("%w: expected date string", ErrMalformedField))
		return time.Time{}
	}
	t, err := time.Parse(dateParseFormat, s)
	// time.Parse accepts fractional seconds the layout does not mention;
	// they would be lost on write, so reject them.
	if err == nil && len(s) > 19 && s[19] == '.' {
		err = errFractionalSeconds
	}
	if err != nil {
		b.malformed(key, v, fmt.Errorf("%w: could not parse date using format '%s'", ErrMalformedField, DateFormat))
		return time.Time{}
	}
	return t
}

func (b *binder) readObject(key string) *document.Object {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	obj, isObject := v.(*document.Object)
	if !isObject {
		b.malformed(key, v, fmt.Errorf("%w: expected object", ErrMalformedField))
		return nil
	}
	return obj
}

func (b *binder) readArray(key string) []any {
	v, ok := b.consume(key)
	if !ok {
		return nil
	}
	arr, isArray := v.([]any)
	if !isArray {
		b.malformed(key, v, fmt.Errorf("%w: expected array", ErrMalformedField))
		return nil
	}
	return arr
}

// readStringArray never returns nil. Elements that are not strings are dropped.
func (b *binder) readStringArray(key string) []string {
	out := make([]string, 0)
	for i, e := range b.readArray(key) {
		s, isString := e.(string)
		if !isString {
			b.malformed(fmt.Sprintf("%s[%d]", key, i), e, fmt.Errorf("%w: array element is not a string", ErrMalformedField))
			continue
		}
		out = append(out, s)
	}
	return out
}

// kind is one of the entity types that can appear as an array element.
// The set is closed: itemKind, hubKind and attachmentKind.
type kind[T Entity] struct {
	name  string
	parse func(*document.Object, parseOptions) (T, error)
}

var (
	itemKind       = kind[*Item]{name: entityItem, parse: parseItem}
	hubKind        = kind[*Hub]{name: entityHub, parse: parseHub}
	attachmentKind = kind[*Attachment]{name: entityAttachment, parse: parseAttachment}
)

// readEntities builds one entity per array element. An element that cannot
// be constructed is reported and left out; it never fails the whole array.
// The result is never nil.
func readEntities[T Entity](b *binder, key string, k kind[T]) []T {
	out := make([]T, 0)
	for i, e := range b.readArray(key) {
		elemKey := fmt.Sprintf("%s[%d]", key, i)
		obj, isObject := e.(*document.Object)
		if !isObject {
			b.malformed(elemKey, e, fmt.Errorf("%w: %s element is not an object", ErrMalformedField, k.name))
			continue
		}
		ent, err := k.parse(obj, b.opts)
		if err != nil {
			b.malformed(elemKey, e, fmt.Errorf("could not build %s: %w", k.name, err))
			continue
		}
		out = append(out, ent)
	}
	return out
}

// finish runs after every known field has been read. Remaining "_" keys
// holding objects become extensions; every other remaining key is counted
// as unmapped. The document is empty afterwards.
func (b *binder) finish() {
	for _, key := range b.doc.Keys() {
		v, _ := b.doc.Get(key)
		b.doc.Remove(key)

		if strings.HasPrefix(key, ExtensionPrefix) {
			obj, isObject := v.(*document.Object)
			if !isObject {
				b.malformed(key, v, fmt.Errorf("%w: extension value is not an object", ErrMalformedField))
				continue
			}
			b.st.extensions.put(key, &Extension{values: obj})
			continue
		}

		b.st.unmappedKeys++
		b.diag().Warnf("[%s] key '%s' was not mapped with value '%v'", b.entity, key, v)
	}
}

// writeIfPresent is the single gate for emitting a field: nothing is
// written for an empty key or an absent value. Entities are serialized
// through ToDocument.
func writeIfPresent(doc *document.Object, key string, value any) {
	if key == "" {
		return
	}
	switch v := value.(type) {
	case nil:
		return
	case string:
		if v == "" {
			return
		}
		doc.Put(key, v)
	case *int64:
		if v == nil {
			return
		}
		doc.Put(key, *v)
	case *bool:
		if v == nil {
			return
		}
		doc.Put(key, *v)
	case time.Time:
		if v.IsZero() {
			return
		}
		doc.Put(key, v.Format(DateFormat))
	case []string:
		if len(v) == 0 {
			return
		}
		doc.Put(key, append([]string(nil), v...))
	case *document.Object:
		if v == nil {
			return
		}
		doc.Put(key, v.Clone())
	case Entity:
		d := v.ToDocument()
		if d == nil {
			return
		}
		doc.Put(key, d)
	default:
		doc.Put(key, v)
	}
}

// writeEntities writes list as an array of documents. An empty list is
// omitted unless always is set.
func writeEntities[T Entity](doc *document.Object, key string, list []T, always bool) {
	arr := make([]any, 0, len(list))
	for _, e := range list {
		if d := e.ToDocument(); d != nil {
			arr = append(arr, d)
		}
	}
	if len(arr) == 0 && !always {
		return
	}
	doc.Put(key, arr)
}
