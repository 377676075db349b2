package codepart

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", Color{A: 0xff}, false},
		{"#ffffff", Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false},
		{"#99ad6a", Color{R: 0x99, G: 0xad, B: 0x6a, A: 0xff}, false},
		{"#F00", Color{R: 0xff, A: 0xff}, false},
		{"#abc", Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff}, false},
		{"99ad6a", Color{}, true},
		{"#99ad6", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}

	for _, tc := range tests {
		c, err := ParseHexColor(tc.in)
		if tc.wantErr {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, c, "input %q", tc.in)
	}
}

func TestColorJSONRoundTrip(t *testing.T) {
	c := MustParseHexColor("#cf6a4c")

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `"#cf6a4c"`, string(b))

	var back Color
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, c, back)
}

func TestColorUnmarshalRejectsNonString(t *testing.T) {
	var c Color
	assert.Error(t, json.Unmarshal([]byte(`1234`), &c))
	assert.Error(t, json.Unmarshal([]byte(`"ff0000"`), &c))
}

func TestColorFromName(t *testing.T) {
	c, ok := ColorFromName("red")
	require.True(t, ok)
	assert.Equal(t, Color{R: 0xff, A: 0xff}, c)

	c, ok = ColorFromName("Steelblue")
	require.True(t, ok)
	assert.Equal(t, MustParseHexColor("#4682b4"), c)

	_, ok = ColorFromName("not-a-color")
	assert.False(t, ok)
}

func TestStyleFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.js")

	require.NoError(t, WriteStyle(path, DefaultStyle))

	s, err := ReadStyle(path, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultStyle.FontName, s.FontName)
	assert.Equal(t, DefaultStyle.FontSize, s.FontSize)
	assert.Equal(t, DefaultStyle.FgColor, s.FgColor)
	assert.Equal(t, DefaultStyle.GutterMarkColor, s.GutterMarkColor)
	assert.Equal(t, DefaultStyle.Syntax, s.Syntax)
}

func TestReadStyleKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "style.js")
	require.NoError(t, writeFile(path, `{"FontSize": 20}`))

	s, err := ReadStyle(path, &DefaultStyle)
	require.NoError(t, err)

	assert.Equal(t, 20, s.FontSize)
	assert.Equal(t, DefaultStyle.BgColor, s.BgColor)
	assert.Equal(t, DefaultStyle.TabStopInterval, s.TabStopInterval)
}

func TestReadStyleMissingFile(t *testing.T) {
	_, err := ReadStyle(filepath.Join(t.TempDir(), "nope.js"), nil)
	assert.Error(t, err)
}
