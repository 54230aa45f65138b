package jsonfeed

import "github.com/pders01/jfeed/internal/document"

// Hub is an endpoint that can be used to subscribe to real-time
// notifications of feed changes, such as a WebSub hub.
type Hub struct {
	Type string
	URL  string

	state
}

// NewHub returns a hub of the given type and URL.
func NewHub(typ, url string) *Hub {
	return &Hub{Type: typ, URL: url}
}

// ParseHub builds a hub from doc, draining it.
func ParseHub(doc *document.Object, opts ...Option) (*Hub, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return parseHub(doc, buildOptions(opts))
}

func parseHub(doc *document.Object, o parseOptions) (*Hub, error) {
	h := &Hub{}
	b := newBinder(doc, entityHub, o, &h.state)
	h.Type = b.readString(keyType)
	h.URL = b.readString(keyURL)
	b.finish()
	return h, nil
}

func (h *Hub) ToDocument() *document.Object {
	if h == nil {
		return nil
	}
	doc := document.New()
	writeIfPresent(doc, keyType, h.Type)
	writeIfPresent(doc, keyURL, h.URL)
	h.extensions.writeTo(doc)
	return doc
}

func (h *Hub) String() string {
	return h.ToDocument().String()
}

func (h *Hub) Validate() error {
	h.validationErrors = nil
	v := newValidator(entityHub)
	v.require(h.URL != "", keyURL)
	v.require(h.Type != "", keyType)
	h.extensions.validate(v)
	return v.result(&h.state)
}
