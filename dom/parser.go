package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Void elements never receive children and need no end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// Parse parses markup text into a parse tree, rooted at a synthetic
// document node. Parsing is recovering: a mismatched end tag implicitly
// closes the elements opened since its matching start tag, an unmatched
// end tag is dropped, and elements still open at end of input are closed.
// Every repair is reported in the returned warnings list.
//
// Parse only returns an error for conditions it cannot repair, like
// unreadable input.
func Parse(markup string) (*html.Node, []string, error) {
	return parse(strings.NewReader(markup))
}

func parse(r io.Reader) (*html.Node, []string, error) {
	doc := &html.Node{Type: html.DocumentNode}
	open := []*html.Node{doc} // stack of open elements, document at bottom
	var warnings []string
	warn := func(format string, args ...interface{}) {
		msg := fmt.Sprintf(format, args...)
		tracer().Infof("parse: %s", msg)
		warnings = append(warnings, msg)
	}
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err != io.EOF {
				return nil, warnings, err
			}
			break
		}
		token := z.Token()
		top := open[len(open)-1]
		switch tt {
		case html.StartTagToken:
			element := elementNode(token)
			top.AppendChild(element)
			if !voidElements[element.DataAtom] {
				open = append(open, element)
			}
		case html.SelfClosingTagToken:
			top.AppendChild(elementNode(token))
		case html.EndTagToken:
			matched := -1
			for i := len(open) - 1; i > 0; i-- {
				if open[i].Data == token.Data {
					matched = i
					break
				}
			}
			if matched < 0 {
				if !voidElements[token.DataAtom] {
					warn("dropping unmatched end tag </%s>", token.Data)
				}
				continue
			}
			for i := len(open) - 1; i > matched; i-- {
				warn("end tag </%s> implicitly closes <%s>", token.Data, open[i].Data)
			}
			open = open[:matched]
		case html.TextToken:
			if strings.TrimSpace(token.Data) == "" {
				continue // inter-element whitespace carries no content
			}
			top.AppendChild(&html.Node{Type: html.TextNode, Data: token.Data})
		case html.CommentToken:
			top.AppendChild(&html.Node{Type: html.CommentNode, Data: token.Data})
		case html.DoctypeToken:
			// ignored, we always operate in standards mode
		}
	}
	for i := len(open) - 1; i > 0; i-- {
		warn("end of input implicitly closes <%s>", open[i].Data)
	}
	return doc, warnings, nil
}

func elementNode(token html.Token) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     token.Data,
		DataAtom: token.DataAtom,
		Attr:     token.Attr,
	}
}
