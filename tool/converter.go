package tool

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// ErrUnsupportedFormat reports a file extension the converter cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Converter turns an input file into markdown text.
type Converter interface {
	Convert(name string, data []byte) (string, error)
}

var excessiveBlankLines = regexp.MustCompile(`\n{3,}`)

// DocumentConverter handles markdown and plain text as-is and converts HTML
// through sanitization to markdown.
type DocumentConverter struct {
	converter *md.Converter
	policy    *bluemonday.Policy
}

// NewDocumentConverter creates a converter with GitHub-flavored markdown
// output for HTML inputs.
func NewDocumentConverter() *DocumentConverter {
	converter := md.NewConverter("", true, nil)
	converter.Use(plugin.GitHubFlavored())
	return &DocumentConverter{
		converter: converter,
		policy:    bluemonday.UGCPolicy(),
	}
}

// Convert returns the markdown text for the named file. The extension picks
// the handling; files without one are treated as plain text.
func (c *DocumentConverter) Convert(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".txt", "":
		return string(data), nil
	case ".html", ".htm":
		return c.convertHTML(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

func (c *DocumentConverter) convertHTML(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	doc.Find("script, style, noscript, nav, header, footer, aside, form, iframe").Remove()

	content := doc.Find("main, article").First()
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}
	raw, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}
	if strings.TrimSpace(raw) == "" {
		raw = string(data)
	}

	sanitized := c.policy.Sanitize(raw)
	markdown, err := c.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("convert html: %w", err)
	}

	markdown = excessiveBlankLines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown), nil
}

var _ Converter = (*DocumentConverter)(nil)
