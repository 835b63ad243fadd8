package cssom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/styledtree"
	"github.com/npillmayer/briq/tree"
	"golang.org/x/net/html"
)

// CSSOM is the object model for a set of stylesheets, compiled into an
// ordered rule list ready for cascading. Stylesheets are added in
// increasing priority: rules from later sheets win source-order ties.
type CSSOM struct {
	defaults *style.PropertyMap
	rules    []compiledRule
	warnings []string
}

// declaration is a single property setting within a rule.
type declaration struct {
	key       string
	value     style.Property
	important bool
}

// compiledRule is a rule with one parsed selector. Rules with a selector
// group (comma-separated prelude) compile into one compiledRule per
// selector, all sharing the rule's source order index.
type compiledRule struct {
	selector Selector
	decls    []declaration
	order    int
}

// NewCSSOM creates an empty CSSOM. additionalProps may hold extension
// (user-agent) default style properties; they become part of the defaults
// attached to the root of every styled tree built from this CSSOM.
func NewCSSOM(additionalProps []style.KeyValue) *CSSOM {
	return &CSSOM{
		defaults: style.InitializeDefaultPropertyValues(additionalProps),
	}
}

// AddStyleSheet compiles the rules of a stylesheet into the CSSOM,
// appending them after previously added sheets. Selectors which cannot be
// parsed at all cause the single rule to be dropped with a warning; the
// rest of the sheet is unaffected.
func (om *CSSOM) AddStyleSheet(sheet StyleSheet) error {
	if sheet == nil {
		return errors.New("cannot add null stylesheet")
	}
	for _, rule := range sheet.Rules() {
		order := len(om.rules)
		decls := declarationsOfRule(rule)
		for _, rawsel := range strings.Split(rule.Selector(), ",") {
			if strings.TrimSpace(rawsel) == "" {
				continue
			}
			sel, err := ParseSelector(rawsel)
			if err != nil {
				om.warn(fmt.Sprintf("dropping rule for selector '%s': %v", rawsel, err))
				continue
			}
			om.rules = append(om.rules, compiledRule{selector: sel, decls: decls, order: order})
		}
	}
	return nil
}

func declarationsOfRule(rule Rule) []declaration {
	props := rule.Properties()
	decls := make([]declaration, 0, len(props))
	for _, key := range props {
		decls = append(decls, declaration{
			key:       key,
			value:     rule.Value(key),
			important: rule.IsImportant(key),
		})
	}
	return decls
}

func (om *CSSOM) warn(msg string) {
	tracer().Infof("cssom: %s", msg)
	om.warnings = append(om.warnings, msg)
}

// Warnings returns recoverable problems encountered while compiling
// stylesheets into this CSSOM.
func (om *CSSOM) Warnings() []string {
	return om.warnings
}

// --- Styling ----------------------------------------------------------------

// Style builds a styled tree for a markup parse tree, computing the
// cascaded property map for every element node. The root of the styled
// tree additionally carries the user-agent default properties, so that
// upward-cascading reads of inherited properties always terminate.
func (om *CSSOM) Style(root *html.Node) (*tree.Node[*styledtree.StyNode], error) {
	if root == nil {
		return nil, errors.New("cannot style a void parse tree")
	}
	styled := buildStyledSubtree(root)
	if styled == nil {
		return nil, errors.New("parse tree contains no styleable nodes")
	}
	tree.Walk(styled, func(n *tree.Node[*styledtree.StyNode]) bool {
		om.styleSingleNode(styledtree.Node(n), n.Parent() == nil)
		return true
	})
	return styled, nil
}

// buildStyledSubtree mirrors the parse tree as styled nodes. Comments and
// other non-content node types are dropped.
func buildStyledSubtree(h *html.Node) *tree.Node[*styledtree.StyNode] {
	switch h.Type {
	case html.ElementNode, html.DocumentNode:
		// proceed
	case html.TextNode:
		return styledtree.NewNodeForHTMLNode(h)
	default:
		return nil
	}
	node := styledtree.NewNodeForHTMLNode(h)
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if sub := buildStyledSubtree(ch); sub != nil {
			node.AddChild(sub)
		}
	}
	return node
}

// styleSingleNode computes and attaches the cascaded property map for one
// styled node. Text nodes carry no properties of their own (they inherit
// at read time).
func (om *CSSOM) styleSingleNode(sn *styledtree.StyNode, isRoot bool) {
	if sn == nil || sn.IsText() {
		return
	}
	pmap := om.cascadePropertiesFor(sn)
	if isRoot {
		for _, groupname := range []string{style.PGColor, style.PGText, style.PGFont, style.PGX} {
			if group := om.defaults.Group(groupname); group != nil {
				pmap = pmap.AddAllFromGroup(group, false)
			}
		}
	}
	sn.SetStyles(pmap)
}

// matchedRule pairs a matching rule with its cascade ranking.
type matchedRule struct {
	spec  Specificity
	order int
	decls []declaration
}

// cascadePropertiesFor runs the cascade for a single node: collect the
// rules whose selector matches, sort them by (specificity, source order)
// ascending and apply declarations in that order, so that later/higher
// ranked rules override earlier ones. Important declarations are applied
// in a second pass and override all normal ones.
func (om *CSSOM) cascadePropertiesFor(sn *styledtree.StyNode) *style.PropertyMap {
	var matches []matchedRule
	for _, rule := range om.rules {
		if rule.selector.Matches(sn) {
			matches = append(matches, matchedRule{
				spec:  rule.selector.Specificity(),
				order: rule.order,
				decls: rule.decls,
			})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].spec != matches[j].spec {
			return matches[i].spec.Less(matches[j].spec)
		}
		return matches[i].order < matches[j].order
	})
	pmap := style.NewPropertyMap()
	for _, m := range matches {
		for _, d := range m.decls {
			if !d.important {
				applyDeclaration(pmap, d)
			}
		}
	}
	for _, m := range matches {
		for _, d := range m.decls {
			if d.important {
				applyDeclaration(pmap, d)
			}
		}
	}
	return pmap
}

func applyDeclaration(pmap *style.PropertyMap, d declaration) {
	if style.IsCompoundProperty(d.key) {
		kvs, err := style.SplitCompoundProperty(d.key, d.value)
		if err != nil {
			tracer().Debugf("cssom: %v", err)
			return
		}
		for _, kv := range kvs {
			pmap.Add(kv.Key, kv.Value)
		}
		return
	}
	pmap.Add(d.key, d.value)
}

// --- Scoped re-styling --------------------------------------------------

// RestyleSubtree re-runs the cascade for a node and its descendants,
// typically after a dynamic pseudo-class or attribute change. Nodes whose
// recomputed property map equals the previous one keep their old map (by
// identity), so downstream consumers can detect unchanged subtrees
// cheaply. Sibling subtrees are never touched.
//
// Returns the styled nodes whose computed styles actually changed.
func (om *CSSOM) RestyleSubtree(node *tree.Node[*styledtree.StyNode]) []*styledtree.StyNode {
	var changed []*styledtree.StyNode
	tree.Walk(node, func(n *tree.Node[*styledtree.StyNode]) bool {
		sn := styledtree.Node(n)
		if sn == nil || sn.IsText() {
			return true
		}
		pmap := om.cascadePropertiesFor(sn)
		if n.Parent() == nil {
			for _, groupname := range []string{style.PGColor, style.PGText, style.PGFont, style.PGX} {
				if group := om.defaults.Group(groupname); group != nil {
					pmap = pmap.AddAllFromGroup(group, false)
				}
			}
		}
		if pmap.Equals(sn.Styles()) {
			return true // keep the old map, preserving identity
		}
		sn.SetStyles(pmap)
		changed = append(changed, sn)
		return true
	})
	return changed
}
