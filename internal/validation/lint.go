package validation

import (
	"fmt"

	"github.com/pders01/jfeed/internal/jsonfeed"
	"github.com/pders01/jfeed/internal/media"
)

// Rule names reported in Finding.Rule.
const (
	RuleURL             = "url"
	RuleVersion         = "version"
	RuleRecommended     = "recommended-field"
	RuleNextURL         = "next-url"
	RuleDuplicateID     = "duplicate-id"
	RuleAttachmentMedia = "attachment-media"
)

// Finding is one advisory observation about a feed. Findings never affect
// the outcome of Feed.Validate.
type Finding struct {
	Rule    string `json:"rule" yaml:"rule" toml:"rule"`
	Path    string `json:"path" yaml:"path" toml:"path"`
	Message string `json:"message" yaml:"message" toml:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s (%s)", f.Path, f.Message, f.Rule)
}

// LintOptions configures LintFeed. A nil URLs validator skips URL checks
// and a nil Media detector skips attachment media checks.
type LintOptions struct {
	URLs  *URLValidator
	Media *media.TypeDetector
}

type linter struct {
	opts     LintOptions
	findings []Finding
}

func (l *linter) add(rule, path, format string, args ...any) {
	l.findings = append(l.findings, Finding{Rule: rule, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (l *linter) url(path, raw string) {
	if raw == "" || l.opts.URLs == nil {
		return
	}
	if err := l.opts.URLs.Validate(raw); err != nil {
		l.add(RuleURL, path, "%q: %v", raw, err)
	}
}

// LintFeed returns the advisory findings for f in document order.
func LintFeed(f *jsonfeed.Feed, opts LintOptions) []Finding {
	if f == nil {
		return nil
	}
	l := &linter{opts: opts}

	if f.Version != "" && f.Version != jsonfeed.Version1 && f.Version != jsonfeed.Version11 {
		l.add(RuleVersion, "version", "unknown version %q", f.Version)
	}
	if f.HomePageURL == "" {
		l.add(RuleRecommended, "home_page_url", "home_page_url is recommended")
	}
	if f.FeedURL == "" {
		l.add(RuleRecommended, "feed_url", "feed_url is recommended")
	}
	if f.NextURL != "" && f.NextURL == f.FeedURL {
		l.add(RuleNextURL, "next_url", "next_url must differ from feed_url")
	}

	l.url("home_page_url", f.HomePageURL)
	l.url("feed_url", f.FeedURL)
	l.url("next_url", f.NextURL)
	l.url("icon", f.Icon)
	l.url("favicon", f.Favicon)
	l.author("author", f.Author)

	seen := make(map[string]int, len(f.Items))
	for i, it := range f.Items {
		if it == nil {
			continue
		}
		path := fmt.Sprintf("items[%d]", i)
		if it.ID != "" {
			if first, dup := seen[it.ID]; dup {
				l.add(RuleDuplicateID, path+".id", "id %q already used by items[%d]", it.ID, first)
			} else {
				seen[it.ID] = i
			}
		}
		l.item(path, it)
	}

	for i, h := range f.Hubs {
		if h == nil {
			continue
		}
		l.url(fmt.Sprintf("hubs[%d].url", i), h.URL)
	}

	return l.findings
}

func (l *linter) author(path string, a *jsonfeed.Author) {
	if a == nil {
		return
	}
	l.url(path+".url", a.URL)
	l.url(path+".avatar", a.Avatar)
}

func (l *linter) item(path string, it *jsonfeed.Item) {
	l.url(path+".url", it.URL)
	l.url(path+".external_url", it.ExternalURL)
	l.url(path+".image", it.Image)
	l.url(path+".banner_image", it.BannerImage)
	l.author(path+".author", it.Author)

	for i, att := range it.Attachments {
		if att == nil {
			continue
		}
		attPath := fmt.Sprintf("%s.attachments[%d]", path, i)
		l.url(attPath+".url", att.URL)
		l.attachmentMedia(attPath, att)
	}
}

func (l *linter) attachmentMedia(path string, att *jsonfeed.Attachment) {
	if l.opts.Media == nil || att.URL == "" || att.MimeType == "" {
		return
	}
	detected := l.opts.Media.DetectType(att.URL)
	declared := l.opts.Media.TypeForMIME(att.MimeType)
	if detected == media.TypeUnknown || declared == media.TypeUnknown || detected == declared {
		return
	}
	l.add(RuleAttachmentMedia, path+".mime_type", "declared %q (%s) but URL looks like %s", att.MimeType, declared, detected)
}
