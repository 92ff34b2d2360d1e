// Package fancy provides pretty printing utilities and styling for CLI output
package fancy

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// Tree returns a new tree with common styling applied
func Tree() *tree.Tree {
	t := tree.New()
	t.EnumeratorStyle(BranchStyle)
	t.Enumerator(tree.RoundedEnumerator)
	return t
}

// BranchNode creates a styled section header node
func BranchNode(title string, info string) *tree.Tree {
	return tree.New().Root(
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			HeaderStyle.Render(title),
			" ",
			InfoStyle.Render(info),
		),
	)
}

// KeyValue renders a "key: value" leaf. Empty values are shown as "(unset)".
func KeyValue(key, value string) string {
	if value == "" {
		return KeyStyle.Render(key+":") + " " + InfoStyle.Render("(unset)")
	}
	return KeyStyle.Render(key+":") + " " + ValueStyle.Render(value)
}

// TruncateString truncates a string if it exceeds maxLength
func TruncateString(s string, maxLength int) string {
	if maxLength < 4 || len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
