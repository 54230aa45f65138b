package jsonfeed

import (
	"time"

	"github.com/pders01/jfeed/internal/document"
)

// Item is a single entry of a feed: a blog post, a podcast episode, a
// status update. An item without an author inherits the feed's author.
type Item struct {
	ID            string
	URL           string
	ExternalURL   string
	Title         string
	ContentHTML   string
	ContentText   string
	Summary       string
	Image         string
	BannerImage   string
	DatePublished time.Time
	DateModified  time.Time
	Author        *Author
	Tags          []string
	Attachments   []*Attachment

	state
}

// NewItem returns an item with the given id.
func NewItem(id string) *Item {
	return &Item{ID: id, Tags: []string{}, Attachments: []*Attachment{}}
}

// ParseItem builds an item from doc, draining it.
func ParseItem(doc *document.Object, opts ...Option) (*Item, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	return parseItem(doc, buildOptions(opts))
}

func parseItem(doc *document.Object, o parseOptions) (*Item, error) {
	it := &Item{}
	b := newBinder(doc, entityItem, o, &it.state)
	it.ID = b.readID(keyID)
	it.URL = b.readString(keyURL)
	it.ExternalURL = b.readString(keyExternalURL)
	it.Title = b.readString(keyTitle)
	it.ContentHTML = b.readString(keyContentHTML)
	it.ContentText = b.readString(keyContentText)
	it.Summary = b.readString(keySummary)
	it.Image = b.readString(keyImage)
	it.BannerImage = b.readString(keyBannerImage)
	it.DatePublished = b.readTime(keyDatePublished)
	it.DateModified = b.readTime(keyDateModified)
	if obj := b.readObject(keyAuthor); obj != nil {
		it.Author = parseAuthor(obj, o)
	}
	it.Tags = b.readStringArray(keyTags)
	it.Attachments = readEntities(b, keyAttachments, attachmentKind)
	b.finish()
	return it, nil
}

// AddTag appends a tag.
func (it *Item) AddTag(tag string) {
	it.Tags = append(it.Tags, tag)
}

// AddAttachment appends an attachment.
func (it *Item) AddAttachment(a *Attachment) {
	if a == nil {
		return
	}
	it.Attachments = append(it.Attachments, a)
}

func (it *Item) ToDocument() *document.Object {
	if it == nil {
		return nil
	}
	doc := document.New()
	writeIfPresent(doc, keyID, it.ID)
	writeIfPresent(doc, keyURL, it.URL)
	writeIfPresent(doc, keyExternalURL, it.ExternalURL)
	writeIfPresent(doc, keyTitle, it.Title)
	writeIfPresent(doc, keyContentHTML, it.ContentHTML)
	writeIfPresent(doc, keyContentText, it.ContentText)
	writeIfPresent(doc, keySummary, it.Summary)
	writeIfPresent(doc, keyImage, it.Image)
	writeIfPresent(doc, keyBannerImage, it.BannerImage)
	writeIfPresent(doc, keyDatePublished, it.DatePublished)
	writeIfPresent(doc, keyDateModified, it.DateModified)
	writeIfPresent(doc, keyAuthor, it.Author)
	writeIfPresent(doc, keyTags, it.Tags)
	writeEntities(doc, keyAttachments, it.Attachments, false)
	it.extensions.writeTo(doc)
	return doc
}

func (it *Item) String() string {
	return it.ToDocument().String()
}

// Validate checks the item and its author and attachments. A missing
// author is not an error.
func (it *Item) Validate() error {
	it.validationErrors = nil
	v := newValidator(entityItem)
	v.require(it.ID != "", keyID)
	v.requireOneOf(it.ContentHTML != "" || it.ContentText != "", keyContentHTML, keyContentText)
	if it.Author != nil {
		v.child(it.Author.Validate())
	}
	for _, a := range it.Attachments {
		if a != nil {
			v.child(a.Validate())
		}
	}
	it.extensions.validate(v)
	return v.result(&it.state)
}
