/*
Package douceuradapter feeds CSS source text, parsed by the douceur parser,
into interface cssom.StyleSheet.

Parsing is recovering: an unparsable rule is dropped with a warning and
parsing continues at the next rule boundary, so a single malformed rule
never voids the rest of a stylesheet.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/gorilla/css/scanner"
	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/style/cssom"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func tracer() tracing.Trace {
	return tracing.Select("briq.style")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css      css.Stylesheet
	warnings []string
}

// Wrap a douceur css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	sheet := &CSSStyles{css: *css}
	return sheet
}

// Parse parses CSS source text into a stylesheet. Malformed rules are
// dropped and reported as warnings; at-rules are outside the scope of this
// engine and are skipped with a warning as well. Parse only fails
// completely if not a single rule survives a non-empty input.
func Parse(csstext string) (*CSSStyles, error) {
	if strings.TrimSpace(csstext) == "" {
		return &CSSStyles{}, nil
	}
	sheet, err := parser.Parse(csstext)
	if err == nil && !hasAtRules(sheet) {
		return Wrap(sheet), nil
	}
	// recover rule by rule
	recovered := &CSSStyles{}
	chunks := splitRuleChunks(csstext)
	for _, chunk := range chunks {
		trimmed := strings.TrimSpace(chunk)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "@") {
			recovered.warn(fmt.Sprintf("skipping unsupported at-rule: %s", abbrev(trimmed)))
			continue
		}
		partial, perr := parser.Parse(chunk)
		if perr != nil {
			recovered.warn(fmt.Sprintf("dropping malformed rule: %s", abbrev(trimmed)))
			continue
		}
		recovered.css.Rules = append(recovered.css.Rules, partial.Rules...)
	}
	if len(recovered.css.Rules) == 0 {
		return recovered, fmt.Errorf("no parsable rules in stylesheet")
	}
	return recovered, nil
}

func hasAtRules(sheet *css.Stylesheet) bool {
	for _, r := range sheet.Rules {
		if r.Kind == css.AtRule {
			return true
		}
	}
	return false
}

// splitRuleChunks cuts CSS source into chunks of one top-level rule each,
// using the CSS token stream to find closing braces at nesting depth zero.
// Tokenizing never fails, so this works on malformed input, too.
func splitRuleChunks(csstext string) []string {
	var chunks []string
	var current strings.Builder
	depth := 0
	s := scanner.New(csstext)
	for {
		token := s.Next()
		if token.Type == scanner.TokenEOF || token.Type == scanner.TokenError {
			break
		}
		current.WriteString(token.Value)
		if token.Type == scanner.TokenChar {
			switch token.Value {
			case "{":
				depth++
			case "}":
				if depth > 0 {
					depth--
				}
				if depth == 0 {
					chunks = append(chunks, current.String())
					current.Reset()
				}
			}
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

func abbrev(s string) string {
	if len(s) > 40 {
		return s[:40] + "…"
	}
	return s
}

func (sheet *CSSStyles) warn(msg string) {
	tracer().Infof("css parse: %s", msg)
	sheet.warnings = append(sheet.warnings, msg)
}

// String re-emits the stylesheet as CSS text, for diagnostics.
func (sheet *CSSStyles) String() string {
	return sheet.css.String()
}

// Warnings returns recoverable problems encountered while parsing the
// source text of this stylesheet.
func (sheet *CSSStyles) Warnings() []string {
	return sheet.warnings
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	othercss := other.(*CSSStyles)
	sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, len(sheet.css.Rules))
	for i := range sheet.css.Rules {
		r := sheet.css.Rules[i]
		rules[i] = Rule(*r)
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule,
// e.g. "margin-top"
func (r Rule) Properties() []string {
	decl := r.Declarations
	props := make([]string, 0, len(decl))
	for _, d := range decl {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key with this rule, e.g. "15px"
func (r Rule) Value(key string) style.Property {
	decl := r.Declarations
	for _, d := range decl {
		if d.Property == key {
			return style.Property(d.Value)
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	decl := r.Declarations
	for _, d := range decl {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

var _ cssom.Rule = &Rule{}

// ExtractStyleElements visits <head> and <body> elements in an HTML parse
// tree and searches for embedded <style>s. It returns the content of
// style-elements as style sheets.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	head := findElement(atom.Head, htmldoc)
	body := findElement(atom.Body, htmldoc)
	sheets := extractStyles(head)
	sheets = append(sheets, extractStyles(body)...)
	return sheets
}

func extractStyles(h *html.Node) []*CSSStyles {
	if h == nil {
		return nil
	}
	var sheets []*CSSStyles
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && ch.FirstChild != nil {
			c, err := Parse(ch.FirstChild.Data)
			if err != nil {
				continue
			}
			sheets = append(sheets, c)
		}
	}
	return sheets
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
