// Package feed converts RSS, Atom and JSON feeds into the JSON Feed model.
package feed

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/jfeed/internal/jsonfeed"
)

// fallbackMIMEType is used for enclosures that do not declare a type.
const fallbackMIMEType = "application/octet-stream"

var (
	imgRegex   = regexp.MustCompile(`<img[^>]+src=["']([^"']+)["']`)
	videoRegex = regexp.MustCompile(`<video[^>]+src=["']([^"']+)["']`)
)

type Converter struct {
	parser *gofeed.Parser
}

func NewConverter() *Converter {
	return &Converter{
		parser: gofeed.NewParser(),
	}
}

// Convert reads a feed in any format gofeed understands and maps it onto
// a version 1.1 JSON Feed.
func (c *Converter) Convert(reader io.Reader) (*jsonfeed.Feed, error) {
	src, err := c.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	out := jsonfeed.NewFeed(jsonfeed.Version11, src.Title)
	out.HomePageURL = src.Link
	out.FeedURL = src.FeedLink
	out.Description = src.Description
	if src.Image != nil {
		out.Icon = src.Image.URL
	}
	out.Author = convertAuthor(src.Authors)

	for i, item := range src.Items {
		out.AddItem(convertItem(item, out.FeedURL, i))
	}

	return out, nil
}

func convertItem(item *gofeed.Item, feedURL string, index int) *jsonfeed.Item {
	it := jsonfeed.NewItem(itemID(item, feedURL, index))
	it.URL = item.Link
	it.Title = item.Title

	if item.Content != "" {
		it.ContentHTML = item.Content
		it.Summary = item.Description
	} else {
		it.ContentHTML = item.Description
	}
	// Entries with neither content nor description still need a body
	if it.ContentHTML == "" {
		it.ContentText = item.Title
	}

	if item.Image != nil && item.Image.URL != "" {
		it.Image = item.Image.URL
	} else if imgs := findMediaInHTML(item.Content + " " + item.Description); len(imgs) > 0 {
		it.Image = imgs[0]
	}

	if item.PublishedParsed != nil {
		it.DatePublished = *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		it.DateModified = *item.UpdatedParsed
	}

	it.Author = convertAuthor(item.Authors)

	for _, tag := range uniqueStrings(item.Categories) {
		it.AddTag(tag)
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		it.AddAttachment(convertEnclosure(enc))
	}

	return it
}

func convertEnclosure(enc *gofeed.Enclosure) *jsonfeed.Attachment {
	mimeType := strings.TrimSpace(enc.Type)
	if mimeType == "" {
		mimeType = fallbackMIMEType
	}
	att := jsonfeed.NewAttachment(enc.URL, mimeType)
	if n, err := strconv.ParseInt(strings.TrimSpace(enc.Length), 10, 64); err == nil && n > 0 {
		att.SetSizeInBytes(n)
	}
	return att
}

func convertAuthor(people []*gofeed.Person) *jsonfeed.Author {
	for _, p := range people {
		if p == nil || p.Name == "" {
			continue
		}
		a := jsonfeed.NewAuthor()
		a.Name = p.Name
		return a
	}
	return nil
}

// itemID prefers the entry's GUID, then its link, and finally a position
// within the feed so every converted item carries an id.
func itemID(item *gofeed.Item, feedURL string, index int) string {
	if item.GUID != "" {
		return item.GUID
	}
	if item.Link != "" {
		return item.Link
	}
	if feedURL == "" {
		feedURL = "item"
	}
	return fmt.Sprintf("%s#%d", feedURL, index+1)
}

func findMediaInHTML(html string) []string {
	var urls []string

	for _, match := range imgRegex.FindAllStringSubmatch(html, -1) {
		if len(match) > 1 {
			urls = append(urls, match[1])
		}
	}

	for _, match := range videoRegex.FindAllStringSubmatch(html, -1) {
		if len(match) > 1 {
			urls = append(urls, match[1])
		}
	}

	return uniqueStrings(urls)
}

func uniqueStrings(strs []string) []string {
	seen := make(map[string]bool)
	result := []string{}
	for _, s := range strs {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}
