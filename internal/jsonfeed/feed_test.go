package jsonfeed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
	"version": "https://jsonfeed.org/version/1",
	"user_comment": "This is a podcast feed.",
	"title": "The Record",
	"home_page_url": "http://therecord.co/",
	"feed_url": "http://therecord.co/feed.json",
	"description": "Stories",
	"icon": "http://therecord.co/icon.png",
	"favicon": "http://therecord.co/favicon.png",
	"expired": false,
	"author": {"name": "Brent Simmons", "url": "http://inessential.com/"},
	"hubs": [{"type": "WebSub", "url": "https://websub.example/"}],
	"_blue_shed": {"about": "https://blueshed-podcasts.com/json-feed-extension-docs", "explicit": false},
	"items": [
		{
			"id": "http://therecord.co/chris-parrish",
			"title": "Special #1 - Chris Parrish",
			"url": "http://therecord.co/chris-parrish",
			"content_text": "Chris has worked at Adobe and as a founder of Rogue Sheep.",
			"content_html": "<p>Chris has worked at Adobe.</p>",
			"summary": "Brent interviews Chris Parrish",
			"date_published": "2014-05-09T14:04:00-07:00",
			"date_modified": "2014-05-10T09:00:00Z",
			"tags": ["interview", "podcast"],
			"attachments": [
				{
					"url": "http://therecord.co/downloads/The-Record-sp1e1-ChrisParrish.m4a",
					"mime_type": "audio/x-m4a",
					"size_in_bytes": 89970236,
					"duration_in_seconds": 6629
				}
			],
			"_itunes": {"episode": 1}
		}
	]
}`

func TestParseFeedBytes(t *testing.T) {
	diag := &recordingDiagnostics{}
	f, err := ParseFeedBytes([]byte(sampleFeed), WithDiagnostics(diag))
	require.NoError(t, err)

	assert.Equal(t, Version1, f.Version)
	assert.Equal(t, "The Record", f.Title)
	assert.Equal(t, "This is a podcast feed.", f.UserComment)
	require.NotNil(t, f.Expired)
	assert.False(t, *f.Expired)
	require.NotNil(t, f.Author)
	assert.Equal(t, "Brent Simmons", f.Author.Name)
	require.Len(t, f.Hubs, 1)
	assert.Equal(t, "WebSub", f.Hubs[0].Type)
	assert.Equal(t, []string{"_blue_shed"}, f.Extensions().Names())

	require.Len(t, f.Items, 1)
	it := f.Items[0]
	if diff := cmp.Diff([]string{"interview", "podcast"}, it.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 2014, it.DatePublished.Year())
	require.Len(t, it.Attachments, 1)
	assert.Equal(t, int64(6629), *it.Attachments[0].DurationInSeconds)
	assert.Equal(t, []string{"_itunes"}, it.Extensions().Names())

	assert.Equal(t, 0, f.UnmappedKeyCount())
	assert.Empty(t, diag.warn)
	assert.Empty(t, diag.errs)
	assert.NoError(t, f.Validate())
}

func TestParseFeedBytes_InvalidJSON(t *testing.T) {
	_, err := ParseFeedBytes([]byte(`{"version":`))
	assert.Error(t, err)

	_, err = ParseFeedBytes([]byte(`[]`))
	assert.Error(t, err)
}

func TestFeed_RoundTrip(t *testing.T) {
	first, err := ParseFeedBytes([]byte(sampleFeed))
	require.NoError(t, err)
	out := first.String()

	second, err := ParseFeedBytes([]byte(out))
	require.NoError(t, err)

	assert.Equal(t, out, second.String())
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, first.Items[0].ContentHTML, second.Items[0].ContentHTML)
	assert.True(t, first.Items[0].DatePublished.Equal(second.Items[0].DatePublished))
	assert.True(t, first.Items[0].DateModified.Equal(second.Items[0].DateModified))
	assert.Equal(t, *first.Items[0].Attachments[0].SizeInBytes, *second.Items[0].Attachments[0].SizeInBytes)
	assert.Equal(t, first.Extensions().Names(), second.Extensions().Names())
}

func TestFeed_SerializationOrder(t *testing.T) {
	f := NewFeed(Version11, "Title")
	f.HomePageURL = "https://example.org/"
	f.SetExpired(true)
	require.NoError(t, f.AddExtension("_x", NewExtension()))
	item := NewItem("1")
	item.ContentText = "hi"
	f.AddItem(item)

	assert.Equal(t,
		`{"version":"https://jsonfeed.org/version/1.1","title":"Title","home_page_url":"https://example.org/","expired":true,"items":[{"id":"1","content_text":"hi"}],"_x":{}}`,
		f.String())
}

func TestFeed_EmptyCollections(t *testing.T) {
	f, err := ParseFeedBytes([]byte(`{"version":"v","title":"t"}`))
	require.NoError(t, err)

	assert.NotNil(t, f.Items)
	assert.NotNil(t, f.Hubs)
	assert.Equal(t, `{"version":"v","title":"t","items":[]}`, f.String())
}

func TestFeed_ItemResilience(t *testing.T) {
	diag := &recordingDiagnostics{}
	f, err := ParseFeedBytes([]byte(`{"version":"v","title":"t","items":[{"id":"1","content_text":"ok"},"not an item"]}`), WithDiagnostics(diag))
	require.NoError(t, err)

	require.Len(t, f.Items, 1)
	assert.Equal(t, "1", f.Items[0].ID)
	assert.Len(t, f.ParseErrors(), 1)
	assert.Len(t, diag.errs, 1)
	assert.NoError(t, f.Validate())
}

func TestFeed_Validate(t *testing.T) {
	src := `{
		"items": [{"id":"1"}, {"content_text":"x"}],
		"hubs": [{"type":"WebSub"}],
		"_ext": {"a.b": 1}
	}`
	f, err := ParseFeedBytes([]byte(src))
	require.NoError(t, err)

	err = f.Validate()
	require.ErrorIs(t, err, ErrValidationFailed)

	want := []string{
		"[Feed] key 'version' must not be null",
		"[Feed] key 'title' must not be null",
		"[Item] one of 'content_html' or 'content_text' must not be null",
		"[Item] key 'id' must not be null",
		"[Hub] key 'url' must not be null",
		"[Extension] key 'a.b' must not contain a full-stop character '.'",
	}
	if diff := cmp.Diff(want, f.ValidationErrors()); diff != "" {
		t.Errorf("validation errors mismatch (-want +got):\n%s", diff)
	}
}

func TestFeed_EmptyStringIsAbsent(t *testing.T) {
	f, err := ParseFeedBytes([]byte(`{"version":"v","title":"","items":[{"id":"","content_text":"","content_html":"<p>"}]}`))
	require.NoError(t, err)
	assert.Empty(t, f.ParseErrors())

	err = f.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{
		"[Feed] key 'title' must not be null",
		"[Item] key 'id' must not be null",
	}, f.ValidationErrors())
	assert.Equal(t, `{"version":"v","items":[{"content_html":"<p>"}]}`, f.String())
}

func TestFeed_FractionalSecondsDropped(t *testing.T) {
	f, err := ParseFeedBytes([]byte(`{"version":"v","title":"t","items":[{"id":"1","content_text":"x","date_published":"2010-02-07T14:04:00.5-05:00","date_modified":"2010-02-07T14:04:00-05:00"}]}`))
	require.NoError(t, err)
	require.Len(t, f.Items, 1)
	assert.True(t, f.Items[0].DatePublished.IsZero())
	require.Len(t, f.Items[0].ParseErrors(), 1)
	assert.ErrorIs(t, f.Items[0].ParseErrors()[0], ErrMalformedField)
	assert.Equal(t, `{"version":"v","title":"t","items":[{"id":"1","content_text":"x","date_modified":"2010-02-07T14:04:00-05:00"}]}`, f.String())
}

func TestFeed_AuthorlessFeedValidates(t *testing.T) {
	f := NewFeed(Version1, "No authors here")
	it := NewItem("1")
	it.ContentHTML = "<p>x</p>"
	f.AddItem(it)

	assert.NoError(t, f.Validate())
	assert.NotContains(t, f.String(), "author")
}

func TestFeed_UnmappedKeys(t *testing.T) {
	diag := &recordingDiagnostics{}
	f, err := ParseFeedBytes([]byte(`{"version":"v","title":"t","language":"en","authors":[],"_ok":{}}`), WithDiagnostics(diag))
	require.NoError(t, err)

	assert.Equal(t, 2, f.UnmappedKeyCount())
	assert.Len(t, diag.warn, 2)
	assert.Contains(t, diag.warn[0], "language")
	assert.NoError(t, f.Validate())
}

func TestWalk(t *testing.T) {
	f, err := ParseFeedBytes([]byte(sampleFeed))
	require.NoError(t, err)

	var names []string
	Walk(f, func(e Entity) {
		switch e.(type) {
		case *Feed:
			names = append(names, "feed")
		case *Author:
			names = append(names, "author")
		case *Item:
			names = append(names, "item")
		case *Attachment:
			names = append(names, "attachment")
		case *Hub:
			names = append(names, "hub")
		}
	})

	assert.Equal(t, []string{"feed", "author", "item", "attachment", "hub"}, names)
}
