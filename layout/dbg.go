package layout

import (
	"fmt"

	tp "github.com/xlab/treeprint"
)

// DumpBoxTree renders a box tree as an ASCII diagram, including the
// computed geometry, for logging and debugging.
func DumpBoxTree(root *LayoutBox) string {
	printer := tp.New()
	printBox(printer, root)
	return printer.String()
}

func printBox(printer tp.Tree, box *LayoutBox) {
	children := box.Children(true)
	if len(children) == 0 {
		printer.AddNode(boxLabel(box))
		return
	}
	branch := printer.AddBranch(boxLabel(box))
	for _, ch := range children {
		printBox(branch, BoxNode(ch))
	}
}

func boxLabel(box *LayoutBox) string {
	name := "∅"
	if box.Styled != nil {
		name = box.Styled.TagName()
	}
	if box.IsText() {
		text := box.Text()
		if len(text) > 12 {
			text = text[:12] + "…"
		}
		name = fmt.Sprintf("%q", text)
	}
	return fmt.Sprintf("%s %s content=%v border-box=%v",
		box.Kind, name, box.Dimensions.Content, box.Dimensions.BorderBox())
}
