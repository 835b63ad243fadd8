package style

import (
	"golang.org/x/net/html"
)

// User-agent default values for non-inherited properties. These are not
// instantiated per node, but handed out whenever a property is neither set
// locally nor inheritable.
var nonInherited = map[string]string{
	"background-color":    "default",
	"border-top-color":    "default",
	"border-left-color":   "default",
	"border-right-color":  "default",
	"border-bottom-color": "default",
	"border-top-style":    "none",
	"border-left-style":   "none",
	"border-right-style":  "none",
	"border-bottom-style": "none",
	"overflow":            "visible",
}

var isDimension = map[string]string{
	"width":                "auto",
	"height":               "auto",
	"min-width":            "none",
	"min-height":           "none",
	"max-width":            "none",
	"max-height":           "none",
	"margin-top":           "0",
	"margin-left":          "0",
	"margin-right":         "0",
	"margin-bottom":        "0",
	"padding-top":          "0",
	"padding-left":         "0",
	"padding-right":        "0",
	"padding-bottom":       "0",
	"border-top-width":     "medium",
	"border-left-width":    "medium",
	"border-right-width":   "medium",
	"border-bottom-width":  "medium",
}

// GetUserAgentDefaultProperty returns the user-agent default property for
// a given key.
func GetUserAgentDefaultProperty(node *html.Node, key string) Property {
	p := NullStyle
	switch key {
	case "display":
		p = DisplayPropertyForHTMLNode(node)
	default:
		if dim, ok := isDimension[key]; ok {
			return Property(dim)
		}
		if ni, ok := nonInherited[key]; ok {
			return Property(ni)
		}
	}
	return p
}

// DisplayPropertyForHTMLNode returns the default `display` CSS property
// for an HTML node.
func DisplayPropertyForHTMLNode(node *html.Node) Property {
	if node == nil {
		return "none"
	}
	if node.Type == html.DocumentNode {
		return "block"
	}
	if node.Type == html.TextNode {
		return "inline"
	}
	if node.Type != html.ElementNode {
		tracer().Debugf("cannot get display-property for non-element")
		return "none"
	}
	switch node.Data {
	case "head", "style", "script", "title":
		return "none"
	case "html", "article", "aside", "body", "div", "footer", "h1", "h2",
		"h3", "h4", "h5", "h6", "header", "li", "ol", "p", "section", "ul":
		return "block"
	case "a", "b", "em", "i", "label", "span", "strong":
		return "inline"
	case "button", "input":
		return "inline-block"
	}
	tracer().Infof("unknown element %s will be set to display: block", node.Data)
	return "block"
}

// InitializeDefaultPropertyValues creates a property map holding the
// default values for inheritable CSS properties. In real-world browsers
// these are the 'user-agent' style values. The map is intended to be
// attached to the root node of a styled tree, so that upward-cascading
// reads of inherited properties always terminate with a value.
//
// Additional (extension) properties may be passed in by the client.
func InitializeDefaultPropertyValues(additionalProps []KeyValue) *PropertyMap {
	pmap := NewPropertyMap()

	for _, kv := range additionalProps { // extension properties land in group X
		pmap.Add(kv.Key, kv.Value)
	}

	color := NewPropertyGroup(PGColor)
	color.Set("color", "black")
	color.Set("background-color", "default")
	pmap.AddAllFromGroup(color, true)

	text := NewPropertyGroup(PGText)
	text.Set("direction", "ltr")
	text.Set("text-align", "left")
	text.Set("white-space", "normal")
	text.Set("word-spacing", "normal")
	text.Set("letter-spacing", "normal")
	text.Set("line-height", "normal")
	pmap.AddAllFromGroup(text, true)

	font := NewPropertyGroup(PGFont)
	font.Set("font-family", "sans-serif")
	font.Set("font-size", "12px")
	font.Set("font-style", "normal")
	font.Set("font-weight", "normal")
	pmap.AddAllFromGroup(font, true)

	return pmap
}
