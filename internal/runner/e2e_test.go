//go:build e2e

package runner

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitecheck/internal/artifact"
	"sitecheck/internal/browser"
	"sitecheck/internal/check"
	"sitecheck/internal/report"
)

const contractPage = `<!doctype html>
<html>
<head>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>
  .js .fade-in-section { visibility: hidden; }
  .js .fade-in-section.is-visible { visibility: visible; }
  .step-circle-container { width: 120px; height: 120px; margin: 16px; background: #ddd; }
  .step-circle-container.flipped { background: #333; }
  section { min-height: 600px; }
</style>
<script>
  document.documentElement.classList.add('js');
  document.addEventListener('DOMContentLoaded', () => {
    document.querySelectorAll('.fade-in-section').forEach(el => el.classList.add('is-visible'));
    document.querySelectorAll('.step-circle-container').forEach(el =>
      el.addEventListener('click', () => el.classList.toggle('flipped')));
  });
</script>
</head>
<body>
  <button class="nav-toggle" aria-label="Open menu">menu</button>
  <h1>Storage, picked up</h1>
  <section id="how-it-works" class="fade-in-section">
    <div class="step-circle-container">1</div>
    <div class="step-circle-container">2</div>
  </section>
  %PRICING%
  <section id="signup" class="fade-in-section"><form><input name="email"></form></section>
</body>
</html>`

func serve(t *testing.T, withPricing bool) string {
	t.Helper()
	pricing := ""
	if withPricing {
		pricing = `<section id="pricing" class="fade-in-section">$29</section>`
	}
	body := strings.Replace(contractPage, "%PRICING%", pricing, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func launch(t *testing.T) *browser.Launcher {
	t.Helper()
	if os.Getenv("SKIP_BROWSER") == "true" {
		t.Skip("Skipping browser test")
	}
	l, err := browser.Launch(context.Background(), browser.LaunchOptions{
		Headless:     os.Getenv("HEADLESS") != "false",
		Preinstalled: os.Getenv("PLAYWRIGHT_PREINSTALLED") == "1",
		NavTimeout:   15 * time.Second,
	})
	if err != nil {
		t.Skipf("Could not start Playwright: %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func e2eRunner(t *testing.T, l *browser.Launcher, url string, out *bytes.Buffer) *Runner {
	t.Helper()
	dir, err := artifact.New(t.TempDir())
	require.NoError(t, err)
	return &Runner{
		Open:      Sessions(l),
		Out:       report.New(out, &bytes.Buffer{}, report.Plain),
		Artifacts: dir,
		URL:       url,
		Settle:    2 * time.Second,
		Log:       NewRunLogger(&bytes.Buffer{}),
		Numbered:  true,
	}
}

func TestE2ERuntimeScenarios(t *testing.T) {
	l := launch(t)
	var out bytes.Buffer
	r := e2eRunner(t, l, serve(t, true), &out)

	results, err := r.Run(context.Background(), RuntimeScenarios())
	require.NoError(t, err, out.String())
	require.Len(t, results, 3)

	for _, line := range []string{"SCENARIO 1: PASSED", "SCENARIO 2: PASSED", "SCENARIO 3: PASSED"} {
		assert.Equal(t, 1, strings.Count(out.String(), line), line)
	}
	assert.Contains(t, out.String(), "PASS: Mobile tap toggle working correctly")
	assert.FileExists(t, r.Artifacts.File("js-disabled.png"))
	assert.FileExists(t, r.Artifacts.File("mobile-tap-unflip.png"))
}

func TestE2EMissingPricing(t *testing.T) {
	l := launch(t)
	var out bytes.Buffer
	r := e2eRunner(t, l, serve(t, false), &out)

	_, err := r.Run(context.Background(), RuntimeScenarios())
	require.ErrorIs(t, err, check.ErrAssertion)
	assert.Contains(t, out.String(), "FAIL: Pricing section")
	assert.NotContains(t, out.String(), "SCENARIO 1: PASSED")
}

func TestE2EUnreachable(t *testing.T) {
	l := launch(t)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	_, err := e2eRunner(t, l, url, &out).Run(context.Background(), RuntimeScenarios())
	require.ErrorIs(t, err, check.ErrNavigation)
}

func TestE2EMobileSmokeConsoleErrors(t *testing.T) {
	l := launch(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.Replace(contractPage, "%PRICING%", `<script>console.error("first"); console.error("second");</script>`, 1)
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	r := e2eRunner(t, l, srv.URL, &out)
	r.Numbered = false

	results, err := r.Run(context.Background(), MobileSmoke())
	require.NoError(t, err, out.String())
	assert.Equal(t, []string{"first", "second"}, results[0].ConsoleErrors)
	assert.Contains(t, out.String(), "FAIL: Console errors found:")
}
