package onto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/smallnest/ontograph/rdf"
)

// Chunk is one fragment of a source document with its own local graph and
// namespace. Once a chunk has been aggregated it is treated as immutable.
type Chunk struct {
	Text      string
	HID       string // stable content hash identifying the chunk
	DocIRI    string
	Graph     *rdf.Graph
	Processed bool
}

// NewChunk creates a chunk for a span of text, deriving its hash identity.
func NewChunk(text, docIRI string) *Chunk {
	return &Chunk{
		Text:   text,
		HID:    TextHash(text),
		DocIRI: docIRI,
		Graph:  rdf.NewGraph(),
	}
}

// IRI returns the chunk identifier scoped under its document.
func (c *Chunk) IRI() string {
	return c.DocIRI + "/chunk/" + c.HID
}

// Namespace returns the chunk-scoped namespace. Every identifier the chunk
// locally mints starts with this prefix.
func (c *Chunk) Namespace() string {
	return ResourceNamespace(c.IRI())
}

// TextHash returns the stable content hash used as chunk and document
// identity.
func TextHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:16]
}
