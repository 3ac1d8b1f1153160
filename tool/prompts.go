package tool

import (
	"fmt"
	"strings"
)

const selectOntologySystem = `You match documents to ontologies. Given a document and a list of known ontologies, answer with JSON: {"short_name": "...", "present": true} when one of the listed ontologies covers the document's domain, or {"short_name": "", "present": false} when none does. Answer with JSON only.`

const draftOntologySystem = `You are an ontology engineer. Given a text chunk and the current ontology in Turtle, produce an addendum: new classes and properties the chunk needs that the ontology lacks. Every term must carry an rdfs:label; properties should carry rdfs:domain and rdfs:range where the text supports them. Answer with JSON only: {"short_name": "...", "title": "...", "description": "...", "version": "...", "iri": "...", "turtle": "..."}.`

const draftFactsSystem = `You extract facts. Given a text chunk, an ontology in Turtle and an entity namespace, produce concrete triples about the entities the chunk mentions, using the ontology's terms and minting entity identifiers inside the given namespace. Answer with JSON only: {"turtle": "...", "ontology_relevance_score": 0.0, "triples_score": 0.0}. Scores are in [0, 1].`

const critiqueOntologySystem = `You review ontology updates. Given a text chunk and an ontology addendum in Turtle, judge whether the addendum is well-formed and faithful to the chunk. Answer with JSON only: {"success": true, "score": 0.0, "comment": "..."}. Score is in [0, 1]; on failure the comment must say what to fix.`

const critiqueFactsSystem = `You review extracted facts. Given a text chunk, its facts in Turtle and the governing ontology, judge whether the facts are grounded in the chunk and conform to the ontology. Answer with JSON only: {"success": true, "score": 0.0, "comment": "..."}. Score is in [0, 1]; on failure the comment must say what to fix.`

func selectOntologyPrompt(req SelectOntologyRequest) string {
	var b strings.Builder
	b.WriteString("Known ontologies:\n")
	for _, o := range req.Ontologies {
		fmt.Fprintf(&b, "- %s: %s\n", o.ShortName, o.Description)
	}
	fmt.Fprintf(&b, "\nDocument:\n%s", excerpt(req.Text, 1000))
	return b.String()
}

func draftOntologyPrompt(req DraftOntologyRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current ontology:\n%s\n\nText chunk:\n%s", req.OntologyTurtle, req.ChunkText)
	if req.Feedback != "" {
		fmt.Fprintf(&b, "\n\nYour previous attempt was rejected: %s\nAddress this.", req.Feedback)
	}
	return b.String()
}

func draftFactsPrompt(req DraftFactsRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ontology:\n%s\n\nEntity namespace: %s\n\nText chunk:\n%s",
		req.OntologyTurtle, req.ChunkNamespace, req.ChunkText)
	if req.Feedback != "" {
		fmt.Fprintf(&b, "\n\nYour previous attempt was rejected: %s\nAddress this.", req.Feedback)
	}
	return b.String()
}

func critiqueOntologyPrompt(req CritiqueOntologyRequest) string {
	return fmt.Sprintf("Ontology addendum:\n%s\n\nText chunk:\n%s", req.OntologyTurtle, req.ChunkText)
}

func critiqueFactsPrompt(req CritiqueFactsRequest) string {
	return fmt.Sprintf("Ontology:\n%s\n\nFacts:\n%s\n\nText chunk:\n%s",
		req.OntologyTurtle, req.FactsTurtle, req.ChunkText)
}

// excerpt truncates text to at most n runes for prompt budgets.
func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
