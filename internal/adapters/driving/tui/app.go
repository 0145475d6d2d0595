package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/keymap"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/styles"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/views/chat"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/views/documents"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/views/menu"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/views/search"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// menuView is the main navigation menu and dashboard.
	menuView *menu.View

	// chatView is the conversation view component.
	chatView *chat.View

	// documentsView is the document management view component.
	documentsView *documents.View

	// searchView is the semantic search view component.
	searchView *search.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// health is the latest readiness reading.
	health domain.HealthSnapshot

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		menuView:      menu.NewView(s),
		chatView:      chat.NewView(s, km, ports.Chat),
		documentsView: documents.NewView(s, km, ports.Document),
		searchView:    search.NewView(s, km, ports.Search),
		currentView:   messages.ViewMenu, // Start with menu
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.documentsView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts: alongside the terminal
// setup it fires the startup fetch batch so the dashboard fills in as the
// backend answers. A slow or down backend never blocks the first paint.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("polaris - Wealth Planning Assistant"),
		a.pollHealth(),
		a.loadClients(),
		a.loadDocuments(),
		a.loadStats(),
	)
}

// pollHealth fetches the backend readiness probes.
func (a *App) pollHealth() tea.Cmd {
	return func() tea.Msg {
		snapshot, err := a.ports.Health.Poll(a.ctx)
		return messages.HealthChecked{Snapshot: snapshot, Err: err}
	}
}

// loadClients fetches the client roster.
func (a *App) loadClients() tea.Cmd {
	return func() tea.Msg {
		if a.ports.Clients == nil {
			return messages.ClientsLoaded{}
		}
		err := a.ports.Clients.Refresh(a.ctx)
		return messages.ClientsLoaded{
			Clients: a.ports.Clients.Clients(),
			Total:   a.ports.Clients.Total(),
			Err:     err,
		}
	}
}

// loadDocuments fetches the document list.
func (a *App) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Document.Refresh(a.ctx)
		return messages.DocumentsLoaded{
			Documents: a.ports.Document.Documents(),
			Err:       err,
		}
	}
}

// loadStats fetches index statistics.
func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		err := a.ports.Document.RefreshStats(a.ctx)
		return messages.StatsLoaded{Stats: a.ports.Document.Stats(), Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.menuView.SetDimensions(msg.Width, msg.Height)
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.documentsView.SetDimensions(msg.Width, msg.Height)
		a.searchView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			if key.Matches(msg, a.keymap.Verify) {
				a.health.State = domain.HealthChecking
				a.menuView.SetHealth(a.health)
				return a, a.pollHealth()
			}
			a.menuView, cmd = a.menuView.Update(msg)
			return a, cmd

		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
			return a, cmd

		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
			return a, cmd

		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
			return a, cmd

		case messages.ViewHelp:
			// Esc from help goes to menu
			if msg.Type == tea.KeyEsc {
				a.currentView = messages.ViewMenu
				return a, nil
			}
			return a, nil
		}
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		// Initialise views when switching to them
		switch msg.View {
		case messages.ViewChat:
			a.chatView.Reset()
			return a, a.chatView.Init()
		case messages.ViewDocuments:
			return a, a.documentsView.Init()
		case messages.ViewSearch:
			a.searchView.Reset()
			return a, a.searchView.Init()
		case messages.ViewMenu, messages.ViewHelp:
			// Other views don't need special initialisation
		}
		return a, nil

	case messages.HealthChecked:
		a.health = msg.Snapshot
		a.menuView.SetHealth(msg.Snapshot)
		return a, nil

	case messages.ClientsLoaded:
		if msg.Err == nil {
			a.menuView.SetClients(msg.Clients, msg.Total)
		}
		return a, nil

	case messages.TurnCompleted:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.DocumentsLoaded:
		a.menuView.SetStats(a.ports.Document.Stats())
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.StatsLoaded:
		a.menuView.SetStats(msg.Stats)
		a.documentsView, cmd = a.documentsView.Update(msg)
		return a, cmd

	case messages.DocumentDeleted, messages.IndexTriggered:
		a.documentsView, cmd = a.documentsView.Update(msg)
		a.menuView.SetStats(a.ports.Document.Stats())
		return a, cmd

	case messages.SearchCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		// Forward to current view
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewDocuments:
			a.documentsView, cmd = a.documentsView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// Menu and help don't handle error messages
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewDocuments:
		a.documentsView, cmd = a.documentsView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewDocuments:
		return a.documentsView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  v           Verify backend health
  q           Quit

Chat:
  (type)      Enter your question
  enter       Send
  esc         Back to Menu

Documents:
  j/k, ↑/↓    Navigate documents
  r           Refresh list
  d           Delete selected
  i           Trigger indexing
  I           Rebuild index
  esc         Back to Menu

Search:
  (type)      Enter search query
  enter       Submit search
  n           New search
  j/k, ↑/↓    Navigate results
  esc         Back to Menu

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Health returns the latest readiness reading.
func (a *App) Health() domain.HealthSnapshot {
	return a.health
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.chatView.SetDimensions(width, height)
	a.documentsView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
}
