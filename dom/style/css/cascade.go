package css

import (
	"errors"
	"fmt"

	"github.com/npillmayer/briq/dom/style"
	"github.com/npillmayer/briq/dom/styledtree"
)

// GetCascadedProperty gets the value of a property. The search cascades to
// parent property maps, if available.
//
// Clients will usually call GetProperty(…) instead as this will respect
// CSS semantics for inherited properties.
//
// The call to GetCascadedProperty will flag an error if the style property
// isn't found (which should not happen, as every property should be included
// in the 'user-agent' default style properties).
func GetCascadedProperty(node *styledtree.StyNode, key string) (style.Property, error) {
	// For cascading, we will start at the current style-tree node and walk
	// upwards until we find a node with the property set in its group.
	// This upward-traversal must succeed if the property is correctly
	// initialized at least in the user-agent styles at the tree root.
	groupname := style.GroupNameFromPropertyKey(key)
	for node != nil {
		if node.Styles() != nil {
			if group := node.Styles().Group(groupname); group != nil {
				if p, ok := group.Get(key); ok && !p.IsEmpty() {
					return p, nil
				}
			}
		}
		node = node.ParentNode()
	}
	errmsg := fmt.Sprintf("Cannot find ancestor with property %s -- did you create global properties?", key)
	return style.NullStyle, errors.New(errmsg)
}

// GetProperty gets the value of a property. If the property is not set
// locally on the style node and the property is inheritable, the search
// cascades to parent property maps, if available.
//
// The call to GetProperty will flag an error if the style property isn't found
// (which should not happen, as every property should be included in the
// 'user-agent' default style properties).
func GetProperty(node *styledtree.StyNode, key string) (style.Property, error) {
	if style.IsCascading(key) {
		return GetCascadedProperty(node, key)
	}
	p := GetLocalProperty(node.Styles(), key)
	if p == style.NullStyle {
		p = style.GetUserAgentDefaultProperty(node.HTMLNode(), key)
	}
	return p, nil
}

// GetLocalProperty returns a style property value, if it is set locally
// for a styled node's property map. No cascading is performed.
func GetLocalProperty(pmap *style.PropertyMap, key string) style.Property {
	if pmap == nil {
		return style.NullStyle
	}
	groupname := style.GroupNameFromPropertyKey(key)
	group := pmap.Group(groupname)
	if group == nil {
		return style.NullStyle
	}
	p, _ := group.Get(key)
	return p
}
