package tool

import "github.com/smallnest/ontograph/store"

// ToolBox bundles the collaborators the extraction workflow needs. All
// fields must be set; NewToolBox fills the conversion and chunking defaults.
type ToolBox struct {
	Generator Generator
	Chunker   Chunker
	Converter Converter
	Ontology  *OntologyManager
	Store     store.TripleStoreManager
}

// NewToolBox assembles a toolbox around a generator and a store, with the
// default markdown chunker and document converter.
func NewToolBox(generator Generator, ts store.TripleStoreManager) *ToolBox {
	return &ToolBox{
		Generator: generator,
		Chunker:   NewMarkdownChunker(),
		Converter: NewDocumentConverter(),
		Ontology:  NewOntologyManager(ts),
		Store:     ts,
	}
}
