package jsonfeed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension_Validate(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantErrors int
	}{
		{"clean", `{"about":"https://blue.example/","explicit":false}`, 0},
		{"full stops", `{"bad.key":"v","another.bad.key":"v"}`, 2},
		{"underscore", `{"_hidden":"v"}`, 1},
		{"both rules on one key", `{"_a.b":"v"}`, 2},
		{"empty", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := ParseExtension(mustDoc(t, tt.payload))
			require.NoError(t, err)

			err = ext.Validate()
			if tt.wantErrors == 0 {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Errors, tt.wantErrors)
		})
	}
}

func TestExtension_RoundTrip(t *testing.T) {
	ext, err := ParseExtension(mustDoc(t, `{"about":"x","nested":{"k":[1,{"z":null}]},"gone":null}`))
	require.NoError(t, err)

	assert.Equal(t, `{"about":"x","nested":{"k":[1,{}]}}`, ext.String())
}

func TestExtensions_Add(t *testing.T) {
	var x Extensions

	assert.ErrorIs(t, x.Add("blue_shed", NewExtension()), ErrExtensionName)
	require.NoError(t, x.Add("_blue_shed", nil))
	require.NoError(t, x.Add("_a", NewExtension()))
	require.NoError(t, x.Add("_blue_shed", NewExtension()))

	assert.Equal(t, []string{"_blue_shed", "_a"}, x.Names())

	x.Remove("_blue_shed")
	assert.Equal(t, 1, x.Len())
	assert.Nil(t, x.Get("_blue_shed"))
}

func TestExtensions_PartitionAndSerialize(t *testing.T) {
	src := `{"name":"Jane","_first":{"a":1},"unknown":true,"_second":{"b":"two"}}`
	a, err := ParseAuthor(mustDoc(t, src))
	require.NoError(t, err)

	assert.Equal(t, []string{"_first", "_second"}, a.Extensions().Names())
	assert.Equal(t, 1, a.UnmappedKeyCount())
	assert.Equal(t, `{"name":"Jane","_first":{"a":1},"_second":{"b":"two"}}`, a.String())

	ext := NewExtension()
	ext.Set("enabled", true)
	require.NoError(t, a.AddExtension("_third", ext))
	v, ok := a.Extension("_third").Get("enabled")
	require.True(t, ok)
	assert.Equal(t, true, v)
}
