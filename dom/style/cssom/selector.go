package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/npillmayer/briq/dom/styledtree"
	"golang.org/x/net/html"
)

// Specificity is a selector's strength, used to break ties when multiple
// rules match a node: (id-count, class+pseudo-count, tag-count), compared
// lexicographically.
type Specificity [3]int

// Less orders specificities lexicographically.
func (sp Specificity) Less(other Specificity) bool {
	for i := 0; i < 3; i++ {
		if sp[i] != other[i] {
			return sp[i] < other[i]
		}
	}
	return false
}

func (sp Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", sp[0], sp[1], sp[2])
}

// simpleSelector is one compound step of a selector chain: an optional tag
// name plus any number of #id, .class and :pseudo matchers.
type simpleSelector struct {
	tag     string // "" or "*" matches any element
	id      string
	classes []string
	pseudos []styledtree.PseudoClasses
	never   bool // unsupported selector part: retained, but matches nothing
}

// Selector is a parsed selector: a chain of compound simple selectors
// separated by the descendant combinator. The last element of the chain is
// the subject of the selector.
type Selector struct {
	raw   string
	chain []simpleSelector
	spec  Specificity
}

// Raw returns the source text the selector was parsed from.
func (sel Selector) Raw() string {
	return sel.raw
}

// Specificity returns the selector's specificity triple.
func (sel Selector) Specificity() Specificity {
	return sel.spec
}

func (sel Selector) String() string {
	return sel.raw
}

// ParseSelector parses a single selector (no commas). Selector parts
// outside the supported grammar (attribute matchers, child/sibling
// combinators, unknown pseudo-classes) do not produce an error; they
// compile to a never-matching step, keeping the rule inert but intact.
func ParseSelector(raw string) (Selector, error) {
	sel := Selector{raw: strings.TrimSpace(raw)}
	if sel.raw == "" {
		return sel, fmt.Errorf("empty selector")
	}
	for _, field := range strings.Fields(sel.raw) {
		step, err := parseSimpleSelector(field)
		if err != nil {
			return sel, err
		}
		sel.chain = append(sel.chain, step)
		sel.spec[0] += boolcount(step.id != "")
		sel.spec[1] += len(step.classes) + len(step.pseudos)
		sel.spec[2] += boolcount(step.tag != "" && step.tag != "*")
	}
	return sel, nil
}

func boolcount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func parseSimpleSelector(field string) (simpleSelector, error) {
	var step simpleSelector
	if field == ">" || field == "+" || field == "~" || strings.ContainsAny(field, "[]()") {
		step.never = true // combinators and attribute matchers are out of scope
		return step, nil
	}
	rest := field
	for len(rest) > 0 {
		switch rest[0] {
		case '#':
			name, tail := scanName(rest[1:])
			if name == "" {
				return step, fmt.Errorf("selector '%s': empty id", field)
			}
			step.id = name
			rest = tail
		case '.':
			name, tail := scanName(rest[1:])
			if name == "" {
				return step, fmt.Errorf("selector '%s': empty class", field)
			}
			step.classes = append(step.classes, name)
			rest = tail
		case ':':
			name, tail := scanName(strings.TrimPrefix(rest[1:], ":"))
			if name == "" {
				return step, fmt.Errorf("selector '%s': empty pseudo-class", field)
			}
			if flag := styledtree.PseudoByName(name); flag != 0 {
				step.pseudos = append(step.pseudos, flag)
			} else {
				step.never = true // unsupported pseudo-class
			}
			rest = tail
		case '*':
			step.tag = "*"
			rest = rest[1:]
		default:
			name, tail := scanName(rest)
			if name == "" {
				return step, fmt.Errorf("selector '%s': unexpected character %q", field, rest[0])
			}
			step.tag = strings.ToLower(name)
			rest = tail
		}
	}
	return step, nil
}

func scanName(s string) (name string, rest string) {
	for i, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// --- Matching ---------------------------------------------------------------

// Matches checks the selector against a styled node. Descendant
// combinators are evaluated against the node's ancestor chain; dynamic
// pseudo-classes are evaluated against the node's current pseudo-state.
func (sel Selector) Matches(sn *styledtree.StyNode) bool {
	if sn == nil || len(sel.chain) == 0 {
		return false
	}
	subject := sel.chain[len(sel.chain)-1]
	if !subject.matches(sn) {
		return false
	}
	// Remaining steps must match ancestors, right to left, in order.
	node := sn.ParentNode()
	for i := len(sel.chain) - 2; i >= 0; i-- {
		step := sel.chain[i]
		for {
			if node == nil {
				return false
			}
			if step.matches(node) {
				node = node.ParentNode()
				break
			}
			node = node.ParentNode()
		}
	}
	return true
}

func (step simpleSelector) matches(sn *styledtree.StyNode) bool {
	if step.never {
		return false
	}
	h := sn.HTMLNode()
	if h == nil || h.Type != html.ElementNode {
		return false
	}
	if step.tag != "" && step.tag != "*" && step.tag != h.Data {
		return false
	}
	if step.id != "" && step.id != sn.ID() {
		return false
	}
	for _, class := range step.classes {
		if !sn.HasClass(class) {
			return false
		}
	}
	for _, pseudo := range step.pseudos {
		if !sn.HasPseudo(pseudo) {
			return false
		}
	}
	return true
}

// UsesPseudoClasses is a predicate wether any step of the selector depends
// on dynamic pseudo-class state.
func (sel Selector) UsesPseudoClasses() bool {
	for _, step := range sel.chain {
		if len(step.pseudos) > 0 {
			return true
		}
	}
	return false
}
