package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/pith"
	"github.com/fwojciec/pith/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Cleaner implements pith.Cleaner at compile time.
var _ pith.Cleaner = (*trafilatura.Cleaner)(nil)

func TestCleaner_Clean(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		c := trafilatura.NewCleaner()
		_, err := c.Clean("")

		require.Error(t, err)
		assert.Equal(t, pith.EINVALID, pith.ErrorCode(err))
	})

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Getting Started - My Docs</title>
<meta property="og:title" content="Getting Started Guide">
</head>
<body>
<nav>Navigation here</nav>
<main>
<h1>Getting Started</h1>
<p>This is the main content of the documentation page.</p>
</main>
<footer>Footer content</footer>
</body>
</html>`

		c := trafilatura.NewCleaner()
		result, err := c.Clean(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content and drops chrome", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Documentation</h1>
<p>This is important documentation content that should be extracted.</p>
<pre><code>func main() { fmt.Println("Hello") }</code></pre>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		c := trafilatura.NewCleaner()
		result, err := c.Clean(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "important documentation content")
		assert.NotContains(t, result.ContentHTML, "Copyright 2024")
	})

	t.Run("returns renderable HTML", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Guide</h1>
<p>First paragraph of the guide text, long enough to be kept.</p>
<p>Second paragraph of the guide text, also long enough to be kept.</p>
</article>
</body>
</html>`

		c := trafilatura.NewCleaner()
		result, err := c.Clean(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "<p")
	})
}
