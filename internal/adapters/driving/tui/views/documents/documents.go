// Package documents provides the uploaded-document management view for
// the TUI.
package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/components/status"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/keymap"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/messages"
	"github.com/polaris-labs/polaris-cli/internal/adapters/driving/tui/styles"
	"github.com/polaris-labs/polaris-cli/internal/core/domain"
	"github.com/polaris-labs/polaris-cli/internal/core/ports/driving"
)

// ErrNoDocumentService is returned when the document service is not provided.
var ErrNoDocumentService = errors.New("documents: document service is required")

// View represents the documents management view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	documentService driving.DocumentService
	ctx             context.Context

	docs     []domain.UploadedDocument
	stats    domain.IndexStats
	selected int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new documents view.
func NewView(s *styles.Styles, km *keymap.KeyMap, documentService driving.DocumentService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:          s,
		keymap:          km,
		statusbar:       status.NewBar(s, km),
		documentService: documentService,
		ctx:             context.Background(),
		width:           80,
		height:          24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view and loads the document list.
func (v *View) Init() tea.Cmd {
	return v.refreshCmd()
}

// refreshCmd re-fetches the document list and statistics.
func (v *View) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.ErrorOccurred{Err: ErrNoDocumentService}
		}
		err := v.documentService.Refresh(v.ctx)
		return messages.DocumentsLoaded{
			Documents: v.documentService.Documents(),
			Err:       err,
		}
	}
}

// deleteCmd removes the document and reports the outcome.
func (v *View) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.ErrorOccurred{Err: ErrNoDocumentService}
		}
		err := v.documentService.Delete(v.ctx, id)
		return messages.DocumentDeleted{ID: id, Err: err}
	}
}

// indexCmd triggers an indexing run.
func (v *View) indexCmd(rebuild bool) tea.Cmd {
	return func() tea.Msg {
		if v.documentService == nil {
			return messages.ErrorOccurred{Err: ErrNoDocumentService}
		}
		err := v.documentService.TriggerIndexing(v.ctx, rebuild)
		return messages.IndexTriggered{Rebuild: rebuild, Err: err}
	}
}

// Update handles messages for the documents view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DocumentsLoaded:
		v.handleDocumentsLoaded(msg)
		return v, nil

	case messages.StatsLoaded:
		v.stats = msg.Stats
		return v, nil

	case messages.DocumentDeleted:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("Deleted document %d", msg.ID))
		// The service already re-fetched the list; sync the snapshot.
		return v, v.syncCmd()

	case messages.IndexTriggered:
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Err.Error())
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		if msg.Rebuild {
			v.statusbar.SetMessage("Index rebuild started")
		} else {
			v.statusbar.SetMessage("Indexing started")
		}
		return v, v.syncCmd()

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	return v, nil
}

// syncCmd pulls the service's current snapshots without a network fetch.
func (v *View) syncCmd() tea.Cmd {
	return func() tea.Msg {
		return messages.DocumentsLoaded{Documents: v.documentService.Documents()}
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
		return v, nil

	case "down", "j":
		if v.selected < len(v.docs)-1 {
			v.selected++
		}
		return v, nil

	case "r":
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Refreshing...")
		return v, v.refreshCmd()

	case "d":
		if doc := v.selectedDocument(); doc != nil {
			v.statusbar.SetState(status.StateWorking)
			v.statusbar.SetMessage("Deleting " + doc.Title + "...")
			return v, v.deleteCmd(doc.ID)
		}
		return v, nil

	case "i":
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Indexing...")
		return v, v.indexCmd(false)

	case "I":
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Rebuilding index...")
		return v, v.indexCmd(true)
	}

	return v, nil
}

// handleDocumentsLoaded applies a fresh document list snapshot.
func (v *View) handleDocumentsLoaded(msg messages.DocumentsLoaded) {
	v.docs = msg.Documents
	if v.selected >= len(v.docs) {
		v.selected = len(v.docs) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
	if v.documentService != nil {
		v.stats = v.documentService.Stats()
	}

	if msg.Err != nil {
		// The previous list stays on screen; only the status bar reports.
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.statusbar.SetState(status.StateReady)
	v.statusbar.SetMessage(fmt.Sprintf("%d documents", len(v.docs)))
}

// selectedDocument returns the selected document, or nil if none.
func (v *View) selectedDocument() *domain.UploadedDocument {
	if len(v.docs) == 0 || v.selected < 0 || v.selected >= len(v.docs) {
		return nil
	}
	return &v.docs[v.selected]
}

// View renders the documents view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 8)

	sections = append(sections, v.styles.Title.Render("Documents"), "")
	sections = append(sections, v.styles.Muted.Render(fmt.Sprintf(
		"%d indexed · %d processed · vocabulary %d",
		v.stats.IndexedDocuments, v.stats.ProcessedDocuments, v.stats.VocabularySize,
	)), "")

	sections = append(sections, v.renderList())

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.renderHints(), v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderList renders the document table.
func (v *View) renderList() string {
	if len(v.docs) == 0 {
		return v.styles.Muted.Render("No documents uploaded. Use `polaris docs upload` to add some.")
	}

	visibleCount := v.height - 10
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if v.selected >= visibleCount {
		start = v.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(v.docs) {
		end = len(v.docs)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, v.renderDocument(i, &v.docs[i]))
	}
	return strings.Join(lines, "\n")
}

// renderDocument formats one document row.
func (v *View) renderDocument(index int, doc *domain.UploadedDocument) string {
	indicator := "  "
	if index == v.selected {
		indicator = "> "
	}

	icon := v.statusIcon(doc.Status)

	title := doc.Title
	maxTitleLen := v.width - 40
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	meta := fmt.Sprintf("%s  %s", doc.FileType, humanSize(doc.SizeBytes))
	if doc.Indexed {
		meta += "  indexed"
	}

	row := fmt.Sprintf("%s%s %-*s  %s", indicator, icon, maxTitleLen, title, meta)
	if index == v.selected {
		return v.styles.Selected.Render(row)
	}
	return v.styles.Normal.Render(fmt.Sprintf("%s%s %-*s  ", indicator, icon, maxTitleLen, title)) +
		v.styles.Muted.Render(meta)
}

// statusIcon maps a processing status to a coloured glyph.
func (v *View) statusIcon(s domain.ProcessingStatus) string {
	switch s {
	case domain.StatusDone:
		return v.styles.Success.Render("✓")
	case domain.StatusProcessing:
		return v.styles.Warning.Render("…")
	case domain.StatusError:
		return v.styles.Error.Render("✗")
	default:
		return v.styles.Muted.Render("○")
	}
}

// renderHints renders the view-specific keybinding hints.
func (v *View) renderHints() string {
	return v.styles.Help.Render("[r] refresh  [d] delete  [i] index  [I] rebuild  [esc] back")
}

// humanSize formats a byte count for display.
func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.statusbar.SetWidth(width)
}

// Documents returns the current document snapshot.
func (v *View) Documents() []domain.UploadedDocument {
	return v.docs
}

// Selected returns the selected index.
func (v *View) Selected() int {
	return v.selected
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}
