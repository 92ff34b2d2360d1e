package fancy

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"
)

// Field is one key/value leaf in a Section.
type Field struct {
	Key   string
	Value string
}

// Section is a titled group of fields.
type Section struct {
	Title  string
	Fields []Field
}

// SectionTree renders sections under a styled root, one branch per section.
func SectionTree(title string, sections ...Section) *tree.Tree {
	t := Tree().Root(RootStyle.Render(title))
	for _, s := range sections {
		branch := BranchNode(s.Title, fmt.Sprintf("(%d)", len(s.Fields)))
		for _, f := range s.Fields {
			branch.Child(KeyValue(f.Key, f.Value))
		}
		t.Child(branch)
	}
	return t
}
