package rdf

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var prefixDeclPattern = regexp.MustCompile(`(?m)^\s*@prefix\s+([A-Za-z][\w-]*)?:`)

// EnsurePrefixes prepends @prefix declarations for every common vocabulary
// prefix the document does not declare itself.
func EnsurePrefixes(src string) string {
	declared := make(map[string]struct{})
	for _, m := range prefixDeclPattern.FindAllStringSubmatch(src, -1) {
		declared[m[1]] = struct{}{}
	}

	var missing []string
	for prefix := range CommonPrefixes {
		if _, ok := declared[prefix]; !ok {
			missing = append(missing, prefix)
		}
	}
	if len(missing) == 0 {
		return src
	}
	sort.Strings(missing)

	var b strings.Builder
	for _, prefix := range missing {
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", prefix, CommonPrefixes[prefix])
	}
	b.WriteString("\n")
	b.WriteString(src)
	return b.String()
}

// EncodeTurtle serializes the graph to Turtle. Statements sharing a subject
// are grouped, prefix declarations come first, and bound namespaces are used
// to abbreviate IRIs. The output round-trips through DecodeTurtle without
// statement loss.
func (g *Graph) EncodeTurtle() string {
	var b strings.Builder

	prefixes := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", p, g.prefixes[p])
	}
	if len(prefixes) > 0 && len(g.stmts) > 0 {
		b.WriteString("\n")
	}

	for _, subject := range g.Subjects() {
		stmts := g.ForSubject(subject)
		b.WriteString(g.encodeIRI(subject))
		for i, st := range stmts {
			if i == 0 {
				b.WriteString(" ")
			} else {
				b.WriteString(" ;\n    ")
			}
			b.WriteString(g.encodePredicate(st.Predicate))
			b.WriteString(" ")
			b.WriteString(g.encodeObject(st.Object))
		}
		b.WriteString(" .\n")
	}
	return b.String()
}

func (g *Graph) encodePredicate(p IRI) string {
	if p == RDFType {
		return "a"
	}
	return g.encodeIRI(p)
}

func (g *Graph) encodeIRI(iri IRI) string {
	s := string(iri)
	// Longest matching bound namespace wins so nested namespaces abbreviate
	// correctly.
	bestPrefix, bestNS := "", ""
	for p, ns := range g.prefixes {
		if ns == "" || !strings.HasPrefix(s, ns) {
			continue
		}
		if len(ns) > len(bestNS) || (len(ns) == len(bestNS) && p < bestPrefix) {
			bestPrefix, bestNS = p, ns
		}
	}
	if bestNS != "" {
		local := s[len(bestNS):]
		if validLocalName(local) {
			return bestPrefix + ":" + local
		}
	}
	return "<" + s + ">"
}

func (g *Graph) encodeObject(o Term) string {
	switch t := o.(type) {
	case IRI:
		return g.encodeIRI(t)
	case Literal:
		quoted := quoteLiteral(t.Value)
		if t.Lang != "" {
			return quoted + "@" + t.Lang
		}
		if t.Datatype != "" {
			return quoted + "^^" + g.encodeIRI(t.Datatype)
		}
		return quoted
	}
	return ""
}

func quoteLiteral(v string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func validLocalName(local string) bool {
	if local == "" {
		return false
	}
	for i, r := range local {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9', r == '-':
			if i == 0 && r == '-' {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// DecodeTurtle parses a Turtle document into a graph. Common vocabulary
// prefixes are injected first when the document omits them. The subset
// understood covers what the pipeline itself emits and what LLM responses
// contain: prefix declarations, IRIs, prefixed names, the "a" keyword,
// string/number/boolean literals with optional language tag or datatype, and
// ';' / ',' continuation lists. Blank nodes are not supported.
func DecodeTurtle(src string) (*Graph, error) {
	p := &turtleParser{input: EnsurePrefixes(src), graph: NewGraph(), line: 1}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return p.graph, nil
}

type turtleParser struct {
	input string
	pos   int
	line  int
	graph *Graph
}

func (p *turtleParser) errf(format string, args ...any) error {
	return fmt.Errorf("turtle: line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *turtleParser) parse() error {
	for {
		p.skipSpace()
		if p.eof() {
			return nil
		}
		if p.hasKeyword("@prefix") {
			if err := p.parsePrefix(); err != nil {
				return err
			}
			continue
		}
		if err := p.parseTriples(); err != nil {
			return err
		}
	}
}

func (p *turtleParser) parsePrefix() error {
	p.pos += len("@prefix")
	p.skipSpace()
	prefix, err := p.readPrefixName()
	if err != nil {
		return err
	}
	p.skipSpace()
	ns, err := p.readIRIRef()
	if err != nil {
		return err
	}
	p.skipSpace()
	if !p.consume('.') {
		return p.errf("expected '.' after @prefix declaration")
	}
	p.graph.Bind(prefix, ns)
	return nil
}

func (p *turtleParser) parseTriples() error {
	subject, err := p.readIRI()
	if err != nil {
		return err
	}
	for {
		p.skipSpace()
		predicate, err := p.readPredicate()
		if err != nil {
			return err
		}
		for {
			p.skipSpace()
			object, err := p.readObject()
			if err != nil {
				return err
			}
			p.graph.Add(Statement{Subject: subject, Predicate: predicate, Object: object})
			p.skipSpace()
			if p.consume(',') {
				continue
			}
			break
		}
		if p.consume(';') {
			p.skipSpace()
			// Tolerate a dangling ';' before '.'
			if p.consume('.') {
				return nil
			}
			continue
		}
		if p.consume('.') {
			return nil
		}
		return p.errf("expected '.', ';' or ',' after object")
	}
}

func (p *turtleParser) readPredicate() (IRI, error) {
	if p.hasKeyword("a") {
		p.pos++
		return RDFType, nil
	}
	return p.readIRI()
}

func (p *turtleParser) readObject() (Term, error) {
	if p.eof() {
		return nil, p.errf("unexpected end of input")
	}
	c := p.input[p.pos]
	switch {
	case c == '"':
		return p.readLiteral()
	case c == '<':
		iri, err := p.readIRIRef()
		return IRI(iri), err
	case c == '[':
		return nil, p.errf("blank node property lists are not supported")
	case c >= '0' && c <= '9', c == '-', c == '+':
		return p.readNumber()
	default:
		if p.hasKeyword("true") {
			p.pos += 4
			return Literal{Value: "true", Datatype: XSDBoolean}, nil
		}
		if p.hasKeyword("false") {
			p.pos += 5
			return Literal{Value: "false", Datatype: XSDBoolean}, nil
		}
		return p.readIRI()
	}
}

func (p *turtleParser) readLiteral() (Term, error) {
	value, err := p.readQuotedString()
	if err != nil {
		return nil, err
	}
	if p.pos+1 < len(p.input) && p.input[p.pos] == '^' && p.input[p.pos+1] == '^' {
		p.pos += 2
		dt, err := p.readIRI()
		if err != nil {
			return nil, err
		}
		return Literal{Value: value, Datatype: dt}, nil
	}
	if !p.eof() && p.input[p.pos] == '@' {
		p.pos++
		start := p.pos
		for !p.eof() && (isAlphaNum(p.input[p.pos]) || p.input[p.pos] == '-') {
			p.pos++
		}
		if p.pos == start {
			return nil, p.errf("empty language tag")
		}
		return Literal{Value: value, Lang: p.input[start:p.pos]}, nil
	}
	return Literal{Value: value}, nil
}

func (p *turtleParser) readQuotedString() (string, error) {
	// Long form """...""" first.
	if strings.HasPrefix(p.input[p.pos:], `"""`) {
		p.pos += 3
		end := strings.Index(p.input[p.pos:], `"""`)
		if end < 0 {
			return "", p.errf("unterminated long string literal")
		}
		raw := p.input[p.pos : p.pos+end]
		p.line += strings.Count(raw, "\n")
		p.pos += end + 3
		return raw, nil
	}
	if !p.consume('"') {
		return "", p.errf("expected string literal")
	}
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errf("unterminated string literal")
		}
		c := p.input[p.pos]
		p.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if p.eof() {
				return "", p.errf("unterminated escape sequence")
			}
			esc := p.input[p.pos]
			p.pos++
			switch esc {
			case 't':
				b.WriteByte('\t')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\', '\'':
				b.WriteByte(esc)
			default:
				return "", p.errf("unsupported escape \\%c", esc)
			}
		case '\n':
			return "", p.errf("newline in string literal")
		default:
			b.WriteByte(c)
		}
	}
}

func (p *turtleParser) readNumber() (Term, error) {
	start := p.pos
	if p.input[p.pos] == '-' || p.input[p.pos] == '+' {
		p.pos++
	}
	decimal := false
	for !p.eof() {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !decimal && p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1]) {
			decimal = true
			p.pos++
			continue
		}
		break
	}
	text := p.input[start:p.pos]
	if text == "" || text == "-" || text == "+" {
		return nil, p.errf("malformed number")
	}
	dt := XSDInteger
	if decimal {
		dt = XSDDecimal
	}
	return Literal{Value: text, Datatype: dt}, nil
}

func (p *turtleParser) readIRI() (IRI, error) {
	if p.eof() {
		return "", p.errf("unexpected end of input, expected IRI")
	}
	if p.input[p.pos] == '<' {
		iri, err := p.readIRIRef()
		return IRI(iri), err
	}
	// Prefixed name.
	start := p.pos
	for !p.eof() && isPNameChar(p.input[p.pos]) {
		p.pos++
	}
	token := p.input[start:p.pos]
	// A trailing '.' is the statement terminator, not part of the name.
	for strings.HasSuffix(token, ".") {
		token = token[:len(token)-1]
		p.pos--
	}
	colon := strings.IndexByte(token, ':')
	if colon < 0 {
		return "", p.errf("expected IRI or prefixed name, got %q", token)
	}
	prefix, local := token[:colon], token[colon+1:]
	ns, ok := p.graph.prefixes[prefix]
	if !ok {
		return "", p.errf("undeclared prefix %q", prefix)
	}
	return IRI(ns + local), nil
}

func (p *turtleParser) readIRIRef() (string, error) {
	if !p.consume('<') {
		return "", p.errf("expected '<'")
	}
	start := p.pos
	for !p.eof() && p.input[p.pos] != '>' {
		if p.input[p.pos] == '\n' {
			return "", p.errf("newline inside IRI")
		}
		p.pos++
	}
	if p.eof() {
		return "", p.errf("unterminated IRI")
	}
	iri := p.input[start:p.pos]
	p.pos++
	return iri, nil
}

func (p *turtleParser) readPrefixName() (string, error) {
	start := p.pos
	for !p.eof() && p.input[p.pos] != ':' {
		c := p.input[p.pos]
		if !isAlphaNum(c) && c != '_' && c != '-' {
			return "", p.errf("malformed prefix name")
		}
		p.pos++
	}
	if p.eof() {
		return "", p.errf("expected ':' in prefix declaration")
	}
	name := p.input[start:p.pos]
	p.pos++
	return name, nil
}

func (p *turtleParser) skipSpace() {
	for !p.eof() {
		c := p.input[p.pos]
		switch {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r':
			p.pos++
		case c == '#':
			for !p.eof() && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *turtleParser) hasKeyword(kw string) bool {
	if !strings.HasPrefix(p.input[p.pos:], kw) {
		return false
	}
	next := p.pos + len(kw)
	if next >= len(p.input) {
		return true
	}
	c := p.input[next]
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '<' || c == '"'
}

func (p *turtleParser) consume(c byte) bool {
	if !p.eof() && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *turtleParser) eof() bool { return p.pos >= len(p.input) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlphaNum(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || isDigit(c)
}

func isPNameChar(c byte) bool {
	return isAlphaNum(c) || c == ':' || c == '_' || c == '-' || c == '.' || c == '%' || c == '/' || c == '#'
}
