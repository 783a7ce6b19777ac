package ginpbjson

import "github.com/gin-gonic/gin"

// DocsUIConfig configures the plain HTML index page that links to the
// docs endpoint -- the gin-server example's handleRoot plays the same
// role (a tiny handler describing the other routes), rendered here
// against a protoreflect-shaped schema instead of a fixed endpoint list,
// so this serves a minimal static page rather than pointing a
// third-party OpenAPI renderer at a generated document.
type DocsUIConfig struct {
	// DocsURL is the URL the docs JSON index is served from.
	DocsURL string
	// Title is the HTML page title.
	Title string
}

// DefaultDocsUIConfig returns a DocsUIConfig pointed at docsURL.
func DefaultDocsUIConfig(docsURL string) DocsUIConfig {
	return DocsUIConfig{DocsURL: docsURL, Title: "pbjson message reference"}
}

// DocsUI returns a gin handler serving a minimal HTML page that fetches
// and renders the docs JSON index.
func DocsUI(docsURL string) gin.HandlerFunc {
	return DocsUIWithConfig(DefaultDocsUIConfig(docsURL))
}

// DocsUIWithConfig is DocsUI with a custom config.
func DocsUIWithConfig(config DocsUIConfig) gin.HandlerFunc {
	html := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>` + config.Title + `</title>
    <style>
      body { font-family: monospace; margin: 2rem; }
      pre { background: #f5f5f5; padding: 1rem; overflow: auto; }
    </style>
</head>
<body>
<h1>` + config.Title + `</h1>
<pre id="doc">loading ` + config.DocsURL + `...</pre>
<script>
fetch('` + config.DocsURL + `')
  .then(r => r.json())
  .then(data => { document.getElementById('doc').textContent = JSON.stringify(data, null, 2) })
  .catch(err => { document.getElementById('doc').textContent = 'failed to load: ' + err })
</script>
</body>
</html>`

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(200, html)
	}
}
