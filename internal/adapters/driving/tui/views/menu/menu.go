// Package menu provides the main navigation menu and dashboard view for
// the TUI. Besides navigation it shows the backend readiness badge, index
// statistics and the client roster loaded at startup.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/styles"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	width    int
	height   int
	ready    bool

	health       domain.HealthSnapshot
	stats        domain.IndexStats
	clients      []domain.Client
	clientsTotal int
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Chat", View: messages.ViewChat},
			{Label: "Documents", View: messages.ViewDocuments},
			{Label: "Search", View: messages.ViewSearch},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("POLARIS"))
	b.WriteString("\n\n")

	b.WriteString(v.styles.Muted.Render("Wealth Planning Assistant"))
	b.WriteString("\n\n")

	b.WriteString(v.renderHealth())
	b.WriteString("\n")
	b.WriteString(v.renderStats())
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := v.styles.Normal

		if i == v.selected {
			cursor = "> "
			style = v.styles.Subtitle
		}

		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	if roster := v.renderClients(); roster != "" {
		b.WriteString("\n")
		b.WriteString(roster)
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [v] Verify health  [q] Quit"))

	return b.String()
}

// renderHealth renders the backend readiness badge.
func (v *View) renderHealth() string {
	switch v.health.State {
	case domain.HealthReady:
		return v.styles.Success.Render("● AI Ready")
	case domain.HealthChecking:
		return v.styles.Muted.Render("◌ Checking backend...")
	case domain.HealthDegraded:
		return v.styles.Warning.Render("○ Limited Mode") +
			v.styles.Muted.Render("  "+degradedDetail(v.health.Probes))
	default:
		return v.styles.Muted.Render("◌ Backend status unknown")
	}
}

// degradedDetail names the first failing probe for the badge.
func degradedDetail(p domain.SubsystemHealth) string {
	switch {
	case !p.ChatInference:
		return "chat inference down"
	case !p.KeyConfigured:
		return "API key not configured"
	case !p.EmbeddingService:
		return "embeddings down"
	case !p.SearchIndex:
		return "search index empty"
	default:
		return ""
	}
}

// renderStats renders the index statistics line.
func (v *View) renderStats() string {
	return v.styles.Muted.Render(fmt.Sprintf(
		"%d documents indexed · %d processed · vocabulary %d",
		v.stats.IndexedDocuments, v.stats.ProcessedDocuments, v.stats.VocabularySize,
	))
}

// renderClients renders the roster panel.
func (v *View) renderClients() string {
	if len(v.clients) == 0 {
		return ""
	}

	lines := make([]string, 0, len(v.clients)+1)
	lines = append(lines, v.styles.Subtitle.Render(fmt.Sprintf("Clients (%d)", v.clientsTotal)))
	for _, c := range v.clients {
		lines = append(lines, v.styles.Normal.Render("  "+c.FullName)+
			v.styles.Muted.Render(fmt.Sprintf("  $%.0f", c.TotalAssets)))
	}
	return strings.Join(lines, "\n") + "\n"
}

// SetHealth updates the readiness badge.
func (v *View) SetHealth(snapshot domain.HealthSnapshot) {
	v.health = snapshot
}

// SetStats updates the index statistics panel.
func (v *View) SetStats(stats domain.IndexStats) {
	v.stats = stats
}

// SetClients updates the roster panel.
func (v *View) SetClients(clients []domain.Client, total int) {
	v.clients = clients
	v.clientsTotal = total
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
