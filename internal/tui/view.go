package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if m.mode == modeHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("taskdock"))
	b.WriteString("\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	sec := m.activeSection()
	if len(sec.todos) == 0 && m.mode == modeBrowse {
		b.WriteString(emptyStyle.Render("No todos. Press a to add one."))
		b.WriteString("\n")
	}

	for i, item := range sec.todos {
		cursor := "  "
		if i == m.cursor && m.mode == modeBrowse {
			cursor = cursorStyle.Render("> ")
		}

		mark := "[ ]"
		if item.Completed {
			mark = "[x]"
		}

		if m.mode == modeEdit && item.ID == m.editID {
			b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, m.input.View()))
			continue
		}

		line := fmt.Sprintf("%s %s", mark, item.Title)
		if _, fading := m.fading[item.ID]; fading {
			line = fadingStyle.Render(line)
		} else if item.Completed {
			line = completedStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	if m.mode == modeCreate {
		b.WriteString(fmt.Sprintf("  [ ] %s\n", m.input.View()))
	}

	if m.toast != "" {
		b.WriteString(toastStyle.Render(m.toast))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("a add · e edit · space toggle · d delete · u undo · tab scope · ? help · q quit"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(m.sections))
	for i, s := range m.sections {
		title := s.title
		if i == m.active {
			tabs = append(tabs, activeSectionStyle.Render(title))
		} else {
			tabs = append(tabs, sectionStyle.Render(title))
		}
	}
	return strings.Join(tabs, "  ")
}
