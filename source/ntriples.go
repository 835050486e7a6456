package source

import (
	"bufio"
	"fmt"
	"io"
	"persona-lab/dataset"
	"persona-lab/errors"
	"strconv"
	"strings"
)

const (
	RDFType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	FOAFName   = "http://xmlns.com/foaf/0.1/name"
	FOAFPerson = "http://xmlns.com/foaf/0.1/Person"
)

// TermKind distinguishes IRIs, blank nodes and literals.
type TermKind int

const (
	IRI TermKind = iota
	BlankNode
	Literal
)

type Term struct {
	Kind     TermKind
	Value    string
	Lang     string
	Datatype string
}

// Key is the string a term is matched by: the IRI, "_:label" for blank nodes,
// or the lexical form for literals.
func (t Term) Key() string {
	if t.Kind == BlankNode {
		return "_:" + t.Value
	}
	return t.Value
}

type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// ReadTriples calls fn for every statement of an N-Triples document.
// Blank lines and comments are skipped; the first malformed line aborts the read.
func ReadTriples(r io.Reader, fn func(Triple) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		triple, err := parseLine(text)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", errors.ErrMalformedTriple, line, err)
		}
		if err := fn(triple); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ParseIdentifiers returns every subject declared with rdf:type typeIRI.
func ParseIdentifiers(r io.Reader, typeIRI string) (map[string]struct{}, error) {
	names := make(map[string]struct{})
	err := ReadTriples(r, func(t Triple) error {
		if t.Predicate.Value == RDFType && t.Object.Kind == IRI && t.Object.Value == typeIRI {
			names[t.Subject.Key()] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// ParseMappings returns (object, subject) pairs for every triple using predicate.
func ParseMappings(r io.Reader, predicate string) ([]dataset.Mapping, error) {
	var mappings []dataset.Mapping
	err := ReadTriples(r, func(t Triple) error {
		if t.Predicate.Value == predicate {
			mappings = append(mappings, dataset.Mapping{Mapped: t.Object.Key(), Origin: t.Subject.Key()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

type lexer struct {
	s   string
	pos int
}

func parseLine(s string) (Triple, error) {
	l := &lexer{s: s}
	subject, err := l.term()
	if err != nil {
		return Triple{}, fmt.Errorf("subject: %w", err)
	}
	if subject.Kind == Literal {
		return Triple{}, fmt.Errorf("subject cannot be a literal")
	}
	predicate, err := l.term()
	if err != nil {
		return Triple{}, fmt.Errorf("predicate: %w", err)
	}
	if predicate.Kind != IRI {
		return Triple{}, fmt.Errorf("predicate must be an IRI")
	}
	object, err := l.term()
	if err != nil {
		return Triple{}, fmt.Errorf("object: %w", err)
	}
	l.skipSpace()
	if !strings.HasPrefix(l.s[l.pos:], ".") {
		return Triple{}, fmt.Errorf("missing terminating '.'")
	}
	l.pos++
	l.skipSpace()
	if rest := l.s[l.pos:]; rest != "" && !strings.HasPrefix(rest, "#") {
		return Triple{}, fmt.Errorf("unexpected trailing content %q", rest)
	}
	return Triple{Subject: subject, Predicate: predicate, Object: object}, nil
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.s) && (l.s[l.pos] == ' ' || l.s[l.pos] == '\t') {
		l.pos++
	}
}

func (l *lexer) term() (Term, error) {
	l.skipSpace()
	if l.pos >= len(l.s) {
		return Term{}, fmt.Errorf("unexpected end of line")
	}
	switch {
	case l.s[l.pos] == '<':
		iri, err := l.until('>')
		if err != nil {
			return Term{}, err
		}
		return Term{Kind: IRI, Value: iri}, nil
	case strings.HasPrefix(l.s[l.pos:], "_:"):
		l.pos += 2
		start := l.pos
		for l.pos < len(l.s) && l.s[l.pos] != ' ' && l.s[l.pos] != '\t' {
			l.pos++
		}
		label := strings.TrimSuffix(l.s[start:l.pos], ".")
		if label == "" {
			return Term{}, fmt.Errorf("empty blank node label")
		}
		// "_:b ." and "_:b." both end the label before the terminator
		l.pos = start + len(label)
		return Term{Kind: BlankNode, Value: label}, nil
	case l.s[l.pos] == '"':
		return l.literal()
	default:
		return Term{}, fmt.Errorf("unexpected character %q", l.s[l.pos])
	}
}

func (l *lexer) until(end byte) (string, error) {
	l.pos++
	start := l.pos
	for l.pos < len(l.s) && l.s[l.pos] != end {
		l.pos++
	}
	if l.pos >= len(l.s) {
		return "", fmt.Errorf("unterminated %q", string(end))
	}
	value := l.s[start:l.pos]
	l.pos++
	return value, nil
}

func (l *lexer) literal() (Term, error) {
	start := l.pos
	l.pos++
	for l.pos < len(l.s) && l.s[l.pos] != '"' {
		if l.s[l.pos] == '\\' {
			l.pos++
		}
		l.pos++
	}
	if l.pos >= len(l.s) {
		return Term{}, fmt.Errorf("unterminated literal")
	}
	l.pos++
	value, err := unescape(l.s[start:l.pos])
	if err != nil {
		return Term{}, err
	}
	t := Term{Kind: Literal, Value: value}
	switch {
	case strings.HasPrefix(l.s[l.pos:], "@"):
		begin := l.pos + 1
		l.pos = begin
		for l.pos < len(l.s) && l.s[l.pos] != ' ' && l.s[l.pos] != '\t' && l.s[l.pos] != '.' {
			l.pos++
		}
		t.Lang = l.s[begin:l.pos]
	case strings.HasPrefix(l.s[l.pos:], "^^"):
		l.pos += 2
		if l.pos >= len(l.s) || l.s[l.pos] != '<' {
			return Term{}, fmt.Errorf("datatype must be an IRI")
		}
		datatype, err := l.until('>')
		if err != nil {
			return Term{}, err
		}
		t.Datatype = datatype
	}
	return t, nil
}

// unescape decodes a quoted N-Triples literal. Apart from \' every N-Triples
// escape is also a Go escape.
func unescape(quoted string) (string, error) {
	var b strings.Builder
	b.Grow(len(quoted))
	for i := 0; i < len(quoted); i++ {
		if quoted[i] == '\\' && i+1 < len(quoted) {
			if quoted[i+1] == '\'' {
				b.WriteByte('\'')
			} else {
				b.WriteByte(quoted[i])
				b.WriteByte(quoted[i+1])
			}
			i++
			continue
		}
		b.WriteByte(quoted[i])
	}
	value, err := strconv.Unquote(b.String())
	if err != nil {
		return "", fmt.Errorf("invalid literal %s: %w", quoted, err)
	}
	return value, nil
}
