package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "qa-artifacts", "nested")
	d, err := New(root)
	require.NoError(t, err)

	info, err := os.Stat(d.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestPathNaming(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(d.Root(), "js-disabled.png"), d.Path("js-disabled", ""))
	assert.Equal(t, filepath.Join(d.Root(), "reduced-motion-how-it-works.png"), d.Path("reduced-motion", "How It Works"))
	assert.Equal(t, filepath.Join(d.Root(), "prod-mobile-hero.png"), d.Path("prod-mobile", "hero"))
}

func TestPathNeverRepeats(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		p := d.Path("mobile-tap", "flip")
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
	assert.True(t, seen[filepath.Join(d.Root(), "mobile-tap-flip-2.png")])

	p := d.Path("mobile-tap", "flip-2")
	assert.False(t, seen[p], "duplicate path %s", p)
	assert.Equal(t, filepath.Join(d.Root(), "mobile-tap-flip-2-2.png"), p)
}

func TestPathSuffixSkipsExplicitNames(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, cp := range []string{"flip", "flip", "flip-2", "flip-3", "flip", "flip-2"} {
		p := d.Path("mobile-tap", cp)
		assert.False(t, seen[p], "duplicate path %s", p)
		seen[p] = true
	}
	assert.Len(t, seen, 6)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Reduced Motion":   "reduced-motion",
		"  top  ":          "top",
		"How It Works!!":   "how-it-works",
		"mobile_tap--flip": "mobile-tap-flip",
		"":                 "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug(in), in)
	}
}

func TestRel(t *testing.T) {
	cwd, err := os.Getwd()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("qa-artifacts", "x.png"), Rel(filepath.Join(cwd, "qa-artifacts", "x.png")))
	assert.Equal(t, "/definitely/elsewhere.png", Rel("/definitely/elsewhere.png"))
	assert.Equal(t, filepath.Join("..cache", "x.png"), Rel(filepath.Join(cwd, "..cache", "x.png")))
	assert.Equal(t, filepath.Dir(cwd), Rel(filepath.Dir(cwd)))
}
