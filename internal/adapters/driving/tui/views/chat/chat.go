// Package chat provides the conversation view for the TUI.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/components/input"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/components/status"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/keymap"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/styles"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
)

// ErrNoChatService is returned when the chat service is not provided.
var ErrNoChatService = errors.New("chat: chat service is required")

// View represents the conversation view with transcript, prompt input,
// thinking spinner and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	spinner   spinner.Model
	statusbar *status.Bar

	chatService driving.ChatService
	ctx         context.Context

	transcript []domain.Message
	width      int
	height     int
	ready      bool
	err        error
}

// NewView creates a new chat view.
func NewView(s *styles.Styles, km *keymap.KeyMap, chatService driving.ChatService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Secondary)

	return &View{
		styles:      s,
		keymap:      km,
		input:       input.NewPromptInput(s, "You: ", "Ask about your wealth plan..."),
		spinner:     sp,
		statusbar:   status.NewBar(s, km),
		chatService: chatService,
		ctx:         context.Background(),
		width:       80,
		height:      24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.input.Focus())
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case spinner.TickMsg:
		// The tick doubles as a transcript refresh: the user message lands
		// in the service transcript the moment a turn is dispatched, and
		// the next tick picks it up.
		v.syncTranscript()
		if v.pending() {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
		return v, nil

	case messages.TurnCompleted:
		v.handleTurnCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if msg.Type == tea.KeyEnter {
		prompt := strings.TrimSpace(v.input.Value())
		if prompt == "" {
			return v, nil
		}
		if v.pending() {
			// One turn at a time; the prompt stays in the input.
			v.statusbar.SetMessage("Waiting for the previous response")
			return v, nil
		}

		v.input.Reset()
		v.err = nil
		v.statusbar.SetState(status.StateThinking)
		v.statusbar.SetMessage("")
		return v, tea.Batch(v.submitTurn(prompt), v.spinner.Tick)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submitTurn runs one chat turn off the UI loop.
func (v *View) submitTurn(prompt string) tea.Cmd {
	return func() tea.Msg {
		if v.chatService == nil {
			return messages.ErrorOccurred{Err: ErrNoChatService}
		}
		assistant, err := v.chatService.Submit(v.ctx, prompt)
		return messages.TurnCompleted{Message: assistant, Err: err}
	}
}

// handleTurnCompleted processes the terminal message of a turn.
func (v *View) handleTurnCompleted(msg messages.TurnCompleted) {
	v.syncTranscript()

	if msg.Err != nil {
		// Locally rejected submission; the transcript was not touched.
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	if msg.Message.IsError {
		v.statusbar.SetState(status.StateError)
		if v.chatService != nil {
			if failure := v.chatService.LastFailure(); failure != nil {
				v.statusbar.SetMessage(string(failure.Kind))
			}
		}
		return
	}

	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage("")
}

// syncTranscript pulls the latest transcript snapshot from the service.
func (v *View) syncTranscript() {
	if v.chatService == nil {
		return
	}
	v.transcript = v.chatService.Messages()
}

// pending reports whether a turn is in flight.
func (v *View) pending() bool {
	return v.chatService != nil && v.chatService.Pending()
}

// View renders the chat view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Title.Render("POLARIS Chat"), "")
	sections = append(sections, v.renderTranscript())

	if v.pending() {
		sections = append(sections, "", v.spinner.View()+v.styles.Muted.Render(" thinking"))
	}

	sections = append(sections, "", v.input.View())

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTranscript renders the tail of the transcript that fits the
// available height.
func (v *View) renderTranscript() string {
	if len(v.transcript) == 0 {
		return v.styles.Muted.Render("No messages yet. Type a question and press Enter.")
	}

	// Reserve space for header, input, spinner and status bar.
	budget := v.height - 10
	if budget < 4 {
		budget = 4
	}

	lines := make([]string, 0, budget)
	for i := len(v.transcript) - 1; i >= 0 && len(lines) < budget; i-- {
		rendered := v.renderMessage(&v.transcript[i])
		block := strings.Split(rendered, "\n")
		// Prepend so the newest message ends up at the bottom.
		lines = append(block, lines...)
	}
	if len(lines) > budget {
		lines = lines[len(lines)-budget:]
	}

	return strings.Join(lines, "\n")
}

// renderMessage formats a single transcript message.
func (v *View) renderMessage(msg *domain.Message) string {
	var label string
	switch {
	case msg.Role == domain.RoleUser:
		label = v.styles.Subtitle.Render("You")
	case msg.IsError:
		label = v.styles.Error.Render("POLARIS")
	default:
		label = v.styles.Title.Render("POLARIS")
	}

	body := v.styles.Normal.Render(msg.Text)
	if msg.IsError {
		body = v.styles.Error.Render(msg.Text)
	}

	var badge string
	if msg.ContextUsed {
		badge = "\n" + v.styles.Muted.Render(fmt.Sprintf("  [context: %d chars]", msg.ContextLength))
	} else if msg.Model != "" {
		badge = "\n" + v.styles.Muted.Render("  [model: "+msg.Model+"]")
	}

	return label + "\n" + body + badge + "\n"
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Transcript returns the last synced transcript snapshot.
func (v *View) Transcript() []domain.Message {
	return v.transcript
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Reset refocuses the prompt input and clears any error.
func (v *View) Reset() {
	v.input.Focus()
	v.err = nil
	v.statusbar.Clear()
	v.syncTranscript()
}
