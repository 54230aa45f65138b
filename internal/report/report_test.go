package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/jfeed/internal/jsonfeed"
	"github.com/pders01/jfeed/internal/validation"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC) }

func parse(t *testing.T, data string) *jsonfeed.Feed {
	t.Helper()
	f, err := jsonfeed.ParseFeedBytes([]byte(data))
	require.NoError(t, err)
	return f
}

func TestBuild_ValidFeed(t *testing.T) {
	f := parse(t, `{"version":"https://jsonfeed.org/version/1.1","title":"t","items":[{"id":"1","content_text":"x"}]}`)

	r := Build("feed.json", f, Options{Now: fixedNow})
	assert.True(t, r.Valid)
	assert.Equal(t, "feed.json", r.Source)
	assert.Equal(t, 1, r.Items)
	assert.Empty(t, r.Errors)
	assert.NotNil(t, r.Errors)
	assert.Equal(t, fixedNow(), r.CheckedAt)
}

func TestBuild_CollectsFromWholeTree(t *testing.T) {
	f := parse(t, `{
		"version": "v",
		"stray": 1,
		"expired": "maybe",
		"items": [
			{"id": "1", "content_text": "x", "oops": true, "attachments": [{"url": "u", "mime_type": "m", "size_in_bytes": "big"}]},
			{"content_html": "<p>"}
		]
	}`)

	r := Build("feed.json", f, Options{Now: fixedNow})
	assert.False(t, r.Valid)
	assert.Equal(t, []string{
		"[Feed] key 'title' must not be null",
		"[Item] key 'id' must not be null",
	}, r.Errors)
	assert.Len(t, r.ParseErrors, 2)
	assert.Equal(t, 2, r.UnmappedKeys)
	assert.Empty(t, r.Findings, "lint only runs in strict mode")
}

func TestBuild_Strict(t *testing.T) {
	f := parse(t, `{"version":"https://jsonfeed.org/version/1.1","title":"t","items":[]}`)

	relaxed := Build("a", f, Options{})
	assert.True(t, relaxed.Valid)

	strict := Build("a", f, Options{Strict: true, Lint: validation.LintOptions{URLs: validation.NewURLValidator()}})
	assert.False(t, strict.Valid)
	require.Len(t, strict.Findings, 2)
	assert.Equal(t, validation.RuleRecommended, strict.Findings[0].Rule)
}

func TestBuild_NilFeed(t *testing.T) {
	r := Build("x", nil, Options{})
	assert.False(t, r.Valid)
	assert.Equal(t, []string{jsonfeed.ErrNilDocument.Error()}, r.Errors)
}

func TestFromError(t *testing.T) {
	r := FromError("broken.json", errors.New("parsing feed: unexpected EOF"), Options{Now: fixedNow})
	assert.False(t, r.Valid)
	assert.Equal(t, []string{"parsing feed: unexpected EOF"}, r.Errors)
	assert.Equal(t, fixedNow(), r.CheckedAt)
}

func TestSummary(t *testing.T) {
	passed, failed := Summary([]*Report{{Valid: true}, {Valid: false}, {Valid: true}})
	assert.Equal(t, 2, passed)
	assert.Equal(t, 1, failed)
}
