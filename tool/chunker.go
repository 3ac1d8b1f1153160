package tool

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// Chunker splits a document into pieces small enough for generation.
type Chunker interface {
	Split(text string) []string
}

// MarkdownChunker splits markdown text at heading boundaries. Sections that
// still exceed the size cap are split again on paragraph, line and word
// boundaries. Heading detection goes through the markdown parser, so a "#"
// inside a fenced code block never starts a new section.
type MarkdownChunker struct {
	maxChunkSize int
	minChunkSize int
	separators   []string
}

// MarkdownChunkerOption configures a MarkdownChunker.
type MarkdownChunkerOption func(*MarkdownChunker)

// WithMaxChunkSize caps the size of an emitted chunk in bytes.
func WithMaxChunkSize(size int) MarkdownChunkerOption {
	return func(c *MarkdownChunker) {
		c.maxChunkSize = size
	}
}

// WithMinChunkSize merges sections smaller than size into their neighbor.
func WithMinChunkSize(size int) MarkdownChunkerOption {
	return func(c *MarkdownChunker) {
		c.minChunkSize = size
	}
}

// NewMarkdownChunker creates a chunker with a 4000 byte cap and a 64 byte
// merge threshold by default.
func NewMarkdownChunker(opts ...MarkdownChunkerOption) *MarkdownChunker {
	c := &MarkdownChunker{
		maxChunkSize: 4000,
		minChunkSize: 64,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Split splits text into chunks. Empty and whitespace-only pieces are
// dropped; the concatenation of the returned chunks covers all of the
// input's content.
func (c *MarkdownChunker) Split(text string) []string {
	sections := c.splitByHeadings(text)
	sections = c.mergeSmall(sections)

	var out []string
	for _, section := range sections {
		if len(section) <= c.maxChunkSize {
			out = append(out, section)
			continue
		}
		out = append(out, c.splitRecursive(section, c.separators)...)
	}
	return out
}

// splitByHeadings cuts the text before every real heading line.
func (c *MarkdownChunker) splitByHeadings(text string) []string {
	headings := headingTexts(text)

	var sections []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if isHeadingLine(line, headings) && strings.TrimSpace(current.String()) != "" {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if strings.TrimSpace(current.String()) != "" {
		sections = append(sections, current.String())
	}
	return sections
}

// headingTexts parses the markdown and returns the set of heading titles.
func headingTexts(text string) map[string]struct{} {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(text))

	out := make(map[string]struct{})
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if heading, ok := node.(*ast.Heading); ok && entering {
			out[flattenText(heading)] = struct{}{}
		}
		return ast.GoToNext
	})
	return out
}

func flattenText(node ast.Node) string {
	var b strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if leaf := n.AsLeaf(); leaf != nil && entering {
			b.Write(leaf.Literal)
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(b.String())
}

func isHeadingLine(line string, headings map[string]struct{}) bool {
	trimmed := strings.TrimSpace(line)
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return false
	}
	_, ok := headings[strings.TrimSpace(rest)]
	return ok
}

// mergeSmall folds undersized sections into the preceding one.
func (c *MarkdownChunker) mergeSmall(sections []string) []string {
	var out []string
	for _, section := range sections {
		if len(out) > 0 && len(strings.TrimSpace(section)) < c.minChunkSize {
			out[len(out)-1] += section
			continue
		}
		out = append(out, section)
	}
	return out
}

// splitRecursive splits text on the first separator that helps, recursing
// into pieces that are still too large.
func (c *MarkdownChunker) splitRecursive(text string, separators []string) []string {
	if len(text) <= c.maxChunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	if len(separators) == 0 {
		return c.hardSplit(text)
	}

	sep, rest := separators[0], separators[1:]
	if sep == "" {
		return c.hardSplit(text)
	}

	parts := strings.SplitAfter(text, sep)
	if len(parts) == 1 {
		return c.splitRecursive(text, rest)
	}

	var out []string
	var current strings.Builder
	for _, part := range parts {
		if current.Len() > 0 && current.Len()+len(part) > c.maxChunkSize {
			out = append(out, c.splitRecursive(current.String(), rest)...)
			current.Reset()
		}
		current.WriteString(part)
	}
	if current.Len() > 0 {
		out = append(out, c.splitRecursive(current.String(), rest)...)
	}
	return out
}

// hardSplit cuts at the byte cap, avoiding a cut inside a UTF-8 sequence.
func (c *MarkdownChunker) hardSplit(text string) []string {
	var out []string
	for len(text) > c.maxChunkSize {
		cut := c.maxChunkSize
		for cut > 0 && text[cut]&0xC0 == 0x80 {
			cut--
		}
		if cut == 0 {
			cut = c.maxChunkSize
		}
		out = append(out, text[:cut])
		text = text[cut:]
	}
	if strings.TrimSpace(text) != "" {
		out = append(out, text)
	}
	return out
}

var _ Chunker = (*MarkdownChunker)(nil)
