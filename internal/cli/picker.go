package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/annotext/spanviz/pkg/annotation"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// documentEntry is one row in the document picker.
type documentEntry struct {
	Path      string
	Name      string
	Entities  int
	Relations int
	Modified  time.Time
	Err       error // set when the file could not be parsed
}

// =============================================================================
// DocumentListModel - Interactive document selection
// =============================================================================

// DocumentListModel is the bubbletea model for interactive document selection.
type DocumentListModel struct {
	Entries  []documentEntry
	Cursor   int
	Selected *documentEntry
	Height   int
	Offset   int
}

// NewDocumentListModel creates a new document list model.
func NewDocumentListModel(entries []documentEntry) DocumentListModel {
	return DocumentListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m DocumentListModel) Init() tea.Cmd {
	return nil
}

func (m DocumentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			entry := m.Entries[m.Cursor]
			if entry.Err != nil {
				return m, nil
			}
			m.Selected = &entry
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DocumentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Document"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		entities := "—"
		relations := "—"
		if e.Err == nil {
			entities = fmt.Sprintf("%d", e.Entities)
			relations = fmt.Sprintf("%d", e.Relations)
		}

		rows = append(rows, []string{cursor, e.Name, entities, relations, formatRelativeTime(e.Modified)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Document", "Entities", "Relations", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			e := m.Entries[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if e.Err != nil {
				return base.Foreground(colorDim)
			}
			if isCurrent {
				return base.Foreground(colorGreen).Bold(true)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

// =============================================================================
// Directory Listing
// =============================================================================

// listDocuments collects the annotation documents in dir. Files that
// fail to parse are listed with their error so the picker can show them
// dimmed instead of hiding them.
func listDocuments(dir string) ([]documentEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var entries []documentEntry
	for _, de := range dirEntries {
		if de.IsDir() || !annotation.IsDocumentFile(de.Name()) {
			continue
		}
		// Layout files share the .json extension but are not documents.
		if strings.HasSuffix(de.Name(), ".layout.json") {
			continue
		}

		path := filepath.Join(dir, de.Name())
		entry := documentEntry{Path: path, Name: de.Name()}

		if info, err := de.Info(); err == nil {
			entry.Modified = info.ModTime()
		}

		doc, err := annotation.ReadDocumentFile(path)
		if err != nil {
			entry.Err = err
		} else {
			entry.Entities = doc.EntityCount()
			entry.Relations = doc.RelationCount()
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// pickDocument runs the interactive picker over the documents in dir.
// It returns the selected path, or "" when the picker was dismissed.
func pickDocument(dir string) (string, error) {
	entries, err := listDocuments(dir)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("no annotation documents in %s", dir)
	}

	model, err := tea.NewProgram(NewDocumentListModel(entries)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}

	final, ok := model.(DocumentListModel)
	if !ok || final.Selected == nil {
		return "", nil
	}
	return final.Selected.Path, nil
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
