package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"filechooser/internal/chooser"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

const (
	defaultHeight = 24
	defaultWidth  = 80
	// Lines taken by everything but the entry rows.
	chromeLines = 12
)

// View implements tea.Model
func (m *Model) View() string {
	frame := m.dialog.Frame()
	if !frame.Visible {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(frame.Title) + "\n")
	b.WriteString(m.renderBreadcrumb(frame.Breadcrumb) + "\n\n")
	b.WriteString(m.renderEntries(frame))
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(m.filter.View() + "\n")
	}
	b.WriteString(m.status.View() + "\n")
	if m.detail != "" {
		b.WriteString(m.styles.Muted.Render(m.detail) + "\n")
	}
	if frame.Selected != "" {
		b.WriteString(m.styles.Selected.Render("Selected: "+frame.Selected) + "\n")
	}
	b.WriteString("\n" + m.renderButtons(frame) + "\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

// renderBreadcrumb draws ".."  parent › current. At a root there is nothing
// above, so ".." is dimmed and the root itself is the current segment.
func (m *Model) renderBreadcrumb(bc chooser.Breadcrumb) string {
	if !bc.CanGoUp {
		return m.styles.Muted.Render("..") + "  " + m.styles.Current.Render(bc.ParentLabel)
	}
	return m.styles.DotDot.Render("..") + "  " +
		m.styles.Crumb.Render(bc.ParentLabel) +
		m.styles.Muted.Render(" › ") +
		m.styles.Current.Render(bc.CurrentLabel)
}

func (m *Model) renderEntries(frame chooser.View) string {
	if len(m.entries) == 0 {
		if m.status.Loading() {
			return "\n"
		}
		return m.styles.Muted.Italic(true).Render("No entries") + "\n"
	}

	var b strings.Builder
	start := m.offset
	end := min(len(m.entries), m.offset+m.listHeight())

	if start > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("↑ %d more", start)) + "\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderEntry(m.entries[i], i == m.cursor, m.entries[i].FullPath == frame.Selected) + "\n")
	}
	if end < len(m.entries) {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("↓ %d more", len(m.entries)-end)) + "\n")
	}
	return b.String()
}

func (m *Model) renderEntry(e chooser.Entry, atCursor, selected bool) string {
	width := m.nameWidth()

	name := e.Name
	if e.IsDir {
		name += string(filepath.Separator)
	}
	name = runewidth.FillRight(runewidth.Truncate(name, width, "…"), width)

	marker := "  "
	if atCursor {
		marker = "▶ "
	}
	check := "  "
	if selected {
		check = " ✓"
	}
	line := marker + iconFor(e) + " " + name + check

	var style lipgloss.Style
	switch {
	case atCursor:
		style = m.styles.Cursor
	case selected:
		style = m.styles.Selected
	case e.IsHidden():
		style = m.styles.Hidden
	case e.IsDir:
		style = m.styles.Directory
	case e.IsSymlink:
		style = m.styles.Symlink
	default:
		style = m.styles.File
	}

	size := ""
	if !e.IsDir {
		size = humanize.Bytes(uint64(e.Size))
	}
	return style.Render(line) + " " + m.styles.Size.Render(fmt.Sprintf("%8s", size))
}

func (m *Model) renderButtons(frame chooser.View) string {
	accept := m.styles.Disabled.Render(frame.AcceptLabel)
	if frame.CanAccept {
		accept = m.styles.Accept.Render(frame.AcceptLabel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, accept, "  ", m.styles.Cancel.Render(frame.CancelLabel))
}

func (m *Model) listHeight() int {
	h := m.height - chromeLines
	if m.help.ShowAll {
		h -= 5
	}
	if h < 3 {
		h = 3
	}
	return h
}

// nameWidth is the column left for names after the marker, icon, check mark,
// size column and frame.
func (m *Model) nameWidth() int {
	w := m.width
	if w == 0 {
		w = defaultWidth
	}
	w -= 24
	if w < 10 {
		w = 10
	}
	return w
}

func iconFor(e chooser.Entry) string {
	if e.IsDir {
		if e.IsSymlink {
			return "🔗"
		}
		return "📁"
	}
	switch strings.ToLower(filepath.Ext(e.Name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "🖼️"
	case ".mp4", ".avi", ".mov", ".mkv":
		return "🎬"
	case ".mp3", ".wav", ".flac", ".ogg":
		return "🎵"
	case ".pdf":
		return "📕"
	case ".zip", ".tar", ".gz", ".rar":
		return "🗜️"
	case ".txt", ".md", ".go", ".js", ".py":
		return "📝"
	default:
		return "📄"
	}
}
