// OntoGraph - Document to Knowledge Graph Extraction in Go
//
// OntoGraph turns unstructured documents into RDF knowledge graphs with the
// help of a language model. A document is converted to markdown, split into
// chunks, and each chunk runs through a retry-bounded generation loop: an
// ontology addendum is drafted and reviewed, facts are extracted against the
// ontology and reviewed, and ontology-level statements are separated from the
// facts. The per-chunk graphs are then merged into one document graph with
// near-duplicate entities collapsed and full chunk provenance recorded.
//
// # Quick Start
//
// Install the package:
//
//	go get github.com/smallnest/ontograph
//
// Basic example:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//
//		"github.com/smallnest/ontograph/agent"
//		"github.com/smallnest/ontograph/store"
//		"github.com/smallnest/ontograph/tool"
//		"github.com/tmc/langchaingo/llms/openai"
//	)
//
//	func main() {
//		llm, _ := openai.New()
//
//		box := tool.NewToolBox(tool.NewLangChainGenerator(llm), store.NewMemoryStore())
//		a, _ := agent.New(box, agent.WithDomain("https://example.com"))
//
//		state, _ := a.ProcessText(context.Background(), "# Acme\n\nAcme was founded in 1999.")
//		fmt.Println(state.FactsGraph.EncodeTurtle())
//	}
//
// # Key Features
//
//   - Workflow Engine: generic state graph with conditional routing and listeners
//   - Retry Bounds: every generation stage gets a fixed visit budget per chunk
//   - Ontology Working Set: known ontologies are selected, extended and flushed back
//   - Record Linkage: near-duplicate entities and predicates merge across chunks
//   - Provenance: every statement is traceable to the chunk it came from
//   - Pluggable Stores: memory, filesystem, SQLite, Redis and PostgreSQL backends
//
// See the package documentation of agent, graph, rdf, aggregate, validate,
// tool and store for details.
package ontograph // import "github.com/smallnest/ontograph"
