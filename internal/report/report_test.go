package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinterPlainPrefixes(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut, Plain)

	p.Pass("Hero headline")
	p.Fail("Pricing section")
	p.Warn("toggle not observed")

	assert.Equal(t, "PASS: Hero headline\nFAIL: Pricing section\nWARN: toggle not observed\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestPrinterEmojiPrefixes(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &bytes.Buffer{}, Emoji)

	p.Result(true, "Hero renders on mobile")
	p.Result(false, "Console errors found:")
	p.Warn("Hamburger not found")

	assert.Equal(t, "✅ Hero renders on mobile\n❌ Console errors found:\n⚠️ Hamburger not found\n", out.String())
}

func TestFailureGoesToErrorStream(t *testing.T) {
	var out, errOut bytes.Buffer
	p := New(&out, &errOut, Plain)

	p.Failure("RUNTIME CHECK FAILED:", errors.New("not visible: Pricing section (#pricing)"))

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "RUNTIME CHECK FAILED: not visible: Pricing section (#pricing)\n")
	assert.Contains(t, errOut.String(), rule)
}

func TestList(t *testing.T) {
	var out bytes.Buffer
	p := New(&out, &bytes.Buffer{}, Emoji)
	p.List([]string{"boom ", "Uncaught TypeError"})
	assert.Equal(t, "  - boom\n  - Uncaught TypeError\n", out.String())
}
