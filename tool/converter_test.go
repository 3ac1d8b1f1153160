package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMarkdownPassesThrough(t *testing.T) {
	c := NewDocumentConverter()
	out, err := c.Convert("report.md", []byte("# Title\n\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody", out)

	out, err = c.Convert("notes.txt", []byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "plain text", out)
}

func TestConvertHTML(t *testing.T) {
	html := `<!DOCTYPE html>
<html>
<head><title>Page</title><style>body { color: red }</style></head>
<body>
<nav><a href="/">home</a></nav>
<article>
<h1>Quarterly Report</h1>
<p>Revenue <strong>grew</strong> in Q3.</p>
<script>alert("nope")</script>
</article>
<footer>copyright</footer>
</body>
</html>`

	out, err := NewDocumentConverter().Convert("page.html", []byte(html))
	require.NoError(t, err)

	assert.Contains(t, out, "Quarterly Report")
	assert.Contains(t, out, "**grew**")
	assert.NotContains(t, out, "alert")
	assert.NotContains(t, out, "home")
	assert.NotContains(t, out, "copyright")
	assert.NotContains(t, out, "color: red")
}

func TestConvertUnsupportedFormat(t *testing.T) {
	_, err := NewDocumentConverter().Convert("scan.pdf", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
