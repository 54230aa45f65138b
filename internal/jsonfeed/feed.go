package jsonfeed

import (
	"fmt"

	"github.com/pders01/jfeed/internal/document"
)

// Feed is the root of a JSON Feed document.
type Feed struct {
	Version     string
	Title       string
	HomePageURL string
	FeedURL     string
	Description string
	UserComment string
	NextURL     string
	Icon        string
	Favicon     string
	Expired     *bool
	Author      *Author
	Items       []*Item
	Hubs        []*Hub

	state
}

// NewFeed returns a feed with the two required fields set and no items.
func NewFeed(version, title string) *Feed {
	return &Feed{Version: version, Title: title, Items: []*Item{}, Hubs: []*Hub{}}
}

// ParseFeed builds a feed from doc, draining it. It only fails for a nil
// document; malformed fields are dropped and listed in ParseErrors.
func ParseFeed(doc *document.Object, opts ...Option) (*Feed, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return parseFeed(doc, buildOptions(opts))
}

// ParseFeedBytes decodes data and builds a feed from it.
func ParseFeedBytes(data []byte, opts ...Option) (*Feed, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}
	return ParseFeed(doc, opts...)
}

func parseFeed(doc *document.Object, o parseOptions) (*Feed, error) {
	f := &Feed{}
	b := newBinder(doc, entityFeed, o, &f.state)
	f.Version = b.readString(keyVersion)
	f.Title = b.readString(keyTitle)
	f.HomePageURL = b.readString(keyHomePageURL)
	f.FeedURL = b.readString(keyFeedURL)
	f.Description = b.readString(keyDescription)
	f.UserComment = b.readString(keyUserComment)
	f.NextURL = b.readString(keyNextURL)
	f.Icon = b.readString(keyIcon)
	f.Favicon = b.readString(keyFavicon)
	f.Expired = b.readBool(keyExpired)
	f.Items = readEntities(b, keyItems, itemKind)
	f.Hubs = readEntities(b, keyHubs, hubKind)
	if obj := b.readObject(keyAuthor); obj != nil {
		f.Author = parseAuthor(obj, o)
	}
	b.finish()
	return f, nil
}

// SetExpired sets the optional expired flag.
func (f *Feed) SetExpired(expired bool) {
	f.Expired = &expired
}

// AddItem appends an item.
func (f *Feed) AddItem(it *Item) {
	if it == nil {
		return
	}
	f.Items = append(f.Items, it)
}

// AddHub appends a hub.
func (f *Feed) AddHub(h *Hub) {
	if h == nil {
		return
	}
	f.Hubs = append(f.Hubs, h)
}

// ToDocument serializes the feed. "items" is always written, as an empty
// array if there are none; "hubs" is omitted when empty.
func (f *Feed) ToDocument() *document.Object {
	if f == nil {
		return nil
	}
	doc := document.New()
	writeIfPresent(doc, keyVersion, f.Version)
	writeIfPresent(doc, keyTitle, f.Title)
	writeIfPresent(doc, keyHomePageURL, f.HomePageURL)
	writeIfPresent(doc, keyFeedURL, f.FeedURL)
	writeIfPresent(doc, keyDescription, f.Description)
	writeIfPresent(doc, keyUserComment, f.UserComment)
	writeIfPresent(doc, keyNextURL, f.NextURL)
	writeIfPresent(doc, keyIcon, f.Icon)
	writeIfPresent(doc, keyFavicon, f.Favicon)
	writeIfPresent(doc, keyExpired, f.Expired)
	writeIfPresent(doc, keyAuthor, f.Author)
	writeEntities(doc, keyItems, f.Items, true)
	writeEntities(doc, keyHubs, f.Hubs, false)
	f.extensions.writeTo(doc)
	return doc
}

func (f *Feed) String() string {
	return f.ToDocument().String()
}

// Validate checks the feed and everything below it, collecting all
// violations. The returned error, if any, is a *ValidationError.
func (f *Feed) Validate() error {
	f.validationErrors = nil
	v := newValidator(entityFeed)
	v.require(f.Version != "", keyVersion)
	v.require(f.Title != "", keyTitle)
	if f.Author != nil {
		v.child(f.Author.Validate())
	}
	for _, it := range f.Items {
		if it != nil {
			v.child(it.Validate())
		}
	}
	for _, h := range f.Hubs {
		if h != nil {
			v.child(h.Validate())
		}
	}
	f.extensions.validate(v)
	return v.result(&f.state)
}

// Walk calls fn for f and every entity below it, depth first in
// serialization order. Nil entities are skipped.
func Walk(f *Feed, fn func(Entity)) {
	if f == nil {
		return
	}
	fn(f)
	if f.Author != nil {
		fn(f.Author)
	}
	for _, it := range f.Items {
		if it == nil {
			continue
		}
		fn(it)
		if it.Author != nil {
			fn(it.Author)
		}
		for _, a := range it.Attachments {
			if a != nil {
				fn(a)
			}
		}
	}
	for _, h := range f.Hubs {
		if h != nil {
			fn(h)
		}
	}
}
