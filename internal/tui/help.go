package tui

import "github.com/charmbracelet/glamour"

const helpMarkdown = `# taskdock

Todos live in **scopes**: one global list plus one list per workspace
folder. Switch between them with ` + "`tab`" + `.

## Keys

| Key | Action |
| --- | ------ |
| a | add a todo (inline) |
| e | edit the selected todo |
| space / x | toggle completed |
| d | delete (undo offered briefly) |
| u | undo the last removal or clear in this scope |
| C | clear the whole scope |
| K / J | move the selected todo up / down |
| tab | next scope |
| q | quit |

Completed todos fade out and delete themselves after a short delay when
auto-delete is enabled; toggle them back before the fade ends to keep them.
`

// renderHelp renders the help markdown. Rendering failures fall back to
// the raw markdown.
func (m Model) renderHelp() string {
	width := m.width
	if width <= 0 || width > 100 {
		width = 80
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}

	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
