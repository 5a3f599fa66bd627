package view

import (
	"encoding/xml"
	stderrors "errors"
	"io"
	"strings"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/neuronlabs/viewimport/errors"
	"github.com/neuronlabs/viewimport/errors/class"
	"github.com/neuronlabs/viewimport/qname"
)

type eventKind int

const (
	startEvent eventKind = iota
	endEvent
	textEvent
	endOfDocument
)

func (k eventKind) String() string {
	switch k {
	case startEvent:
		return "start element"
	case endEvent:
		return "end element"
	case textEvent:
		return "text"
	case endOfDocument:
		return "end of document"
	}
	return "unknown"
}

// event is single document event. The position is the 1-based line and
// column where the event starts.
type event struct {
	kind   eventKind
	name   qname.QName
	attrs  []xml.Attr
	text   string
	line   int
	column int
}

// attr gets the attribute with the 'local' name in no namespace or in the view namespace.
func (e *event) attr(local string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Local == local && (a.Name.Space == "" || a.Name.Space == qname.ViewURI) {
			return a.Value, true
		}
	}
	return "", false
}

func (e *event) isWhitespace() bool {
	return e.kind == textEvent && strings.TrimSpace(e.text) == ""
}

type token struct {
	tok    xml.Token
	line   int
	column int
	err    error
}

// source is the pull based event source over the xml decoder. The adjacent
// character data is merged into a single text event. The comments, processing
// instructions and directives are skipped.
type source struct {
	decoder *xml.Decoder
	peeked  *token
	last    *event
}

func newSource(r io.Reader) *source {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader
	return &source{decoder: d}
}

// charsetReader decodes the documents declared with the non UTF-8 encoding.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Newf(class.ImportMalformedValue, "unsupported document encoding: '%s'", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// next gets the next event.
func (s *source) next() (*event, error) {
	for {
		t := s.read()
		if t.err != nil {
			if t.err == io.EOF {
				s.last = &event{kind: endOfDocument, line: t.line, column: t.column}
				return s.last, nil
			}
			return nil, s.fail(t)
		}

		var ev *event
		switch tok := t.tok.(type) {
		case xml.StartElement:
			ev = &event{kind: startEvent, name: qname.New(tok.Name.Space, tok.Name.Local), attrs: tok.Attr}
		case xml.EndElement:
			ev = &event{kind: endEvent, name: qname.New(tok.Name.Space, tok.Name.Local)}
		case xml.CharData:
			text, err := s.readText(string(tok))
			if err != nil {
				return nil, err
			}
			ev = &event{kind: textEvent, text: text}
		default:
			continue
		}
		ev.line, ev.column = t.line, t.column
		s.last = ev
		return ev, nil
	}
}

// nextElement gets the next event skipping the whitespace text.
func (s *source) nextElement() (*event, error) {
	for {
		ev, err := s.next()
		if err != nil {
			return nil, err
		}
		if !ev.isWhitespace() {
			return ev, nil
		}
	}
}

func (s *source) readText(text string) (string, error) {
	var sb strings.Builder
	sb.WriteString(text)
	for {
		t := s.read()
		if t.err != nil {
			s.peeked = &t
			return sb.String(), nil
		}
		switch tok := t.tok.(type) {
		case xml.CharData:
			sb.Write(tok)
		case xml.Comment, xml.ProcInst, xml.Directive:
		default:
			s.peeked = &t
			return sb.String(), nil
		}
	}
}

func (s *source) read() token {
	if s.peeked != nil {
		t := *s.peeked
		s.peeked = nil
		return t
	}
	line, column := s.decoder.InputPos()
	tok, err := s.decoder.Token()
	if err != nil {
		return token{line: line, column: column, err: err}
	}
	return token{tok: xml.CopyToken(tok), line: line, column: column}
}

func (s *source) fail(t token) error {
	e := &Error{Line: t.line, Column: t.column}
	var syntaxErr *xml.SyntaxError
	var classified *errors.Error
	switch {
	case stderrors.As(t.err, &syntaxErr):
		e.Err = errors.Wrap(t.err, class.ImportMalformedValue, "malformed document")
		e.Line, e.Column = s.decoder.InputPos()
	case stderrors.As(t.err, &classified):
		e.Err = classified
	default:
		e.Err = errors.Wrap(t.err, class.ImportRead, "reading document failed")
	}
	return e
}
