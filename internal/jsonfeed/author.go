package jsonfeed

import "github.com/pders01/jfeed/internal/document"

// Author describes the author of a feed or an item. All fields are
// optional, but a valid author has at least one of them.
type Author struct {
	Name   string
	URL    string
	Avatar string

	state
}

// NewAuthor returns an empty author.
func NewAuthor() *Author {
	return &Author{}
}

// ParseAuthor builds an author from doc, draining it.
func ParseAuthor(doc *document.Object, opts ...Option) (*Author, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return parseAuthor(doc, buildOptions(opts)), nil
}

func parseAuthor(doc *document.Object, o parseOptions) *Author {
	a := &Author{}
	b := newBinder(doc, entityAuthor, o, &a.state)
	a.Name = b.readString(keyName)
	a.URL = b.readString(keyURL)
	a.Avatar = b.readString(keyAvatar)
	b.finish()
	return a
}

func (a *Author) ToDocument() *document.Object {
	if a == nil {
		return nil
	}
	doc := document.New()
	writeIfPresent(doc, keyName, a.Name)
	writeIfPresent(doc, keyURL, a.URL)
	writeIfPresent(doc, keyAvatar, a.Avatar)
	a.extensions.writeTo(doc)
	return doc
}

func (a *Author) String() string {
	return a.ToDocument().String()
}

func (a *Author) Validate() error {
	a.validationErrors = nil
	v := newValidator(entityAuthor)
	v.requireOneOf(a.Name != "" || a.URL != "" || a.Avatar != "", keyName, keyURL, keyAvatar)
	a.extensions.validate(v)
	return v.result(&a.state)
}
