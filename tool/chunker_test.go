package tool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitOnHeadings(t *testing.T) {
	doc := `# Title

Introductory paragraph with enough words to clear the merge threshold easily, padded a little more.

## First Section

Body of the first section, also long enough that it stands on its own as a chunk without merging away.

## Second Section

Body of the second section, likewise comfortably past the minimum chunk size for this configuration.
`
	chunks := NewMarkdownChunker(WithMinChunkSize(10)).Split(doc)
	require.Len(t, chunks, 3)
	assert.True(t, strings.HasPrefix(chunks[0], "# Title"))
	assert.True(t, strings.HasPrefix(chunks[1], "## First Section"))
	assert.True(t, strings.HasPrefix(chunks[2], "## Second Section"))
}

func TestSplitIgnoresHashInsideCodeFence(t *testing.T) {
	doc := "# Real Heading\n\nSome prose before the code.\n\n```bash\n# not a heading\necho hi\n```\n\nMore prose after the code block.\n"
	chunks := NewMarkdownChunker(WithMinChunkSize(1)).Split(doc)
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "# not a heading")
}

func TestSplitMergesTinySections(t *testing.T) {
	doc := "# A\n\nA full paragraph of text that is clearly larger than the merge threshold in use here.\n\n# B\n\nx\n"
	chunks := NewMarkdownChunker(WithMinChunkSize(20)).Split(doc)
	// The "# B" section is below the threshold and folds into its neighbor.
	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0], "# B")
}

func TestSplitCapsChunkSize(t *testing.T) {
	doc := "# Big\n\n" + strings.Repeat("word ", 400)
	chunks := NewMarkdownChunker(WithMaxChunkSize(500), WithMinChunkSize(1)).Split(doc)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 500)
	}
}

func TestSplitPreservesContent(t *testing.T) {
	doc := "# One\n\nalpha beta gamma\n\n# Two\n\ndelta epsilon zeta\n"
	chunks := NewMarkdownChunker(WithMinChunkSize(1)).Split(doc)
	assert.Equal(t, doc, strings.Join(chunks, ""))
}

func TestSplitPlainText(t *testing.T) {
	chunks := NewMarkdownChunker().Split("no headings here, just one paragraph of text")
	require.Len(t, chunks, 1)

	assert.Empty(t, NewMarkdownChunker().Split(""))
	assert.Empty(t, NewMarkdownChunker().Split("   \n  \n"))
}
