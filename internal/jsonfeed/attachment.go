package jsonfeed

import "github.com/pders01/jfeed/internal/document"

// Attachment is a related resource of an item, such as a podcast episode.
type Attachment struct {
	URL               string
	MimeType          string
	Title             string
	SizeInBytes       *int64
	DurationInSeconds *int64

	state
}

// NewAttachment returns an attachment with the two required fields set.
func NewAttachment(url, mimeType string) *Attachment {
	return &Attachment{URL: url, MimeType: mimeType}
}

// ParseAttachment builds an attachment from doc, draining it.
func ParseAttachment(doc *document.Object, opts ...Option) (*Attachment, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return parseAttachment(doc, buildOptions(opts))
}

func parseAttachment(doc *document.Object, o parseOptions) (*Attachment, error) {
	a := &Attachment{}
	b := newBinder(doc, entityAttachment, o, &a.state)
	a.URL = b.readString(keyURL)
	a.MimeType = b.readString(keyMimeType)
	a.Title = b.readString(keyTitle)
	a.SizeInBytes = b.readInt64(keySizeInBytes)
	a.DurationInSeconds = b.readInt64(keyDurationInSeconds)
	b.finish()
	return a, nil
}

// SetSizeInBytes sets the optional size.
func (a *Attachment) SetSizeInBytes(n int64) {
	a.SizeInBytes = &n
}

// SetDurationInSeconds sets the optional duration.
func (a *Attachment) SetDurationInSeconds(n int64) {
	a.DurationInSeconds = &n
}

func (a *Attachment) ToDocument() *document.Object {
	if a == nil {
		return nil
	}
	doc := document.New()
	writeIfPresent(doc, keyURL, a.URL)
	writeIfPresent(doc, keyMimeType, a.MimeType)
	writeIfPresent(doc, keyTitle, a.Title)
	writeIfPresent(doc, keySizeInBytes, a.SizeInBytes)
	writeIfPresent(doc, keyDurationInSeconds, a.DurationInSeconds)
	a.extensions.writeTo(doc)
	return doc
}

func (a *Attachment) String() string {
	return a.ToDocument().String()
}

func (a *Attachment) Validate() error {
	a.validationErrors = nil
	v := newValidator(entityAttachment)
	v.require(a.URL != "", keyURL)
	v.require(a.MimeType != "", keyMimeType)
	a.extensions.validate(v)
	return v.result(&a.state)
}
