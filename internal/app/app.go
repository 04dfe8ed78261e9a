package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/genius-board/internal/api"
	"github.com/nhle/genius-board/internal/board"
	"github.com/nhle/genius-board/internal/cache"
	"github.com/nhle/genius-board/internal/model"
	appsync "github.com/nhle/genius-board/internal/sync"
	"github.com/nhle/genius-board/internal/ui"
	"github.com/nhle/genius-board/internal/ui/binpanel"
	"github.com/nhle/genius-board/internal/ui/boardview"
	"github.com/nhle/genius-board/internal/ui/command"
	"github.com/nhle/genius-board/internal/ui/detail"
	helpview "github.com/nhle/genius-board/internal/ui/help"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewDetail
	ViewDraftBin
	ViewArchiveBin
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the backend and local cache.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	client       *api.Client
	cache        *cache.Store
	config       *model.AppConfig
	keys         *KeyMap
	engine       *board.Engine
	master       *model.MasterData
	poller       *appsync.Poller

	boardView   boardview.Model
	detailView  detail.Model
	draftBin    binpanel.Model
	archiveBin  binpanel.Model
	helpView    helpview.Model
	commandView command.Model

	detailOpen bool
	boardIdx   int
	ready      bool
	loading    bool
	errMessage string
	fromCache  bool
}

// New creates a new root application model.
func New(client *api.Client, store *cache.Store, cfg *model.AppConfig) Model {
	keys := DefaultKeyMap()
	engine := board.New()
	if cfg.Display.DefaultBoard != "" {
		engine.SetBoardFilter(cfg.Display.DefaultBoard)
	}

	return Model{
		currentView: ViewBoard,
		client:      client,
		cache:       store,
		config:      cfg,
		keys:        keys,
		engine:      engine,
		poller:      appsync.New(client, appsync.DefaultInterval),
		boardView:   boardview.New(engine, keys, 80, 24),
		draftBin:    binpanel.New(engine, board.EdgeLeft, keys, 80, 24),
		archiveBin:  binpanel.New(engine, board.EdgeRight, keys, 80, 24),
		helpView:    helpview.New(keys, 80, 24),
		commandView: command.New(80, 24),
		loading:     true,
	}
}

// Init loads cached data for an instant first paint and starts the
// background refresher, which fetches immediately and then on a cadence.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCached(), m.poller.Start())
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.boardView.SetSize(w, h)
		m.draftBin.SetSize(w, h)
		m.archiveBin.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		if m.detailOpen {
			m.detailView.SetSize(w, h)
		}
		return m, nil

	case cachedDataMsg:
		// Cached data only fills in while the first fetch is in flight.
		if m.loading {
			if msg.master != nil && m.master == nil {
				m.master = msg.master
				m.boardView.SetEmployees(msg.master.Employees)
			}
			if msg.cards != nil && len(m.engine.Cards()) == 0 {
				m.engine.SetCards(msg.cards)
				m.fromCache = true
			}
		}
		return m, nil

	case appsync.RefreshResultMsg:
		return m.handleRefresh(msg)

	case cardSavedMsg:
		return m.handleCardSaved(msg)

	case tokenStoredMsg:
		switch {
		case msg.err != nil:
			m.errMessage = fmt.Sprintf("token update failed: %v", msg.err)
		case msg.cleared:
			m.errMessage = "token cleared; applies on next start"
		default:
			m.errMessage = "token stored; applies on next start"
		}
		return m, nil

	case commentAddedMsg:
		if msg.err != nil {
			if m.detailOpen {
				m.detailView.ApplyError(msg.err)
			}
			return m, nil
		}
		if m.detailOpen && m.detailView.CardID() == msg.cardID {
			m.detailView.ApplyComment(*msg.comment)
		}
		if card, ok := m.engine.CardByID(msg.cardID); ok {
			card.Comments = append(card.Comments, *msg.comment)
			m.engine.UpsertCard(card)
		}
		return m, nil

	case commentsLoadedMsg:
		if msg.err == nil && m.detailOpen && m.detailView.CardID() == msg.cardID {
			m.detailView.ApplyComments(msg.comments)
		}
		return m, nil

	case subtaskDeletedMsg:
		if msg.err != nil {
			if m.detailOpen {
				m.detailView.ApplyError(msg.err)
			}
			return m, nil
		}
		if m.detailOpen && m.detailView.CardID() == msg.cardID {
			return m, m.detailView.ApplySubtaskDeleted(msg.subtaskID)
		}
		return m, nil

	case cardDeletedMsg:
		if msg.err != nil {
			m.errMessage = fmt.Sprintf("delete failed: %v", msg.err)
			return m, nil
		}
		m.engine.RemoveCard(msg.cardID)
		if m.detailOpen && m.detailView.CardID() == msg.cardID {
			m.detailOpen = false
			m.currentView = ViewBoard
		}
		m.poller.Refresh()
		return m, nil

	case boardview.SelectedCardMsg:
		return m.openCard(msg.CardID)

	case boardview.DropCardMsg:
		if err := m.engine.Drop(msg.CardID, msg.Target, msg.Index, msg.HasIndex); err != nil {
			m.errMessage = err.Error()
			return m, nil
		}
		return m, m.persistCard(msg.CardID)

	case boardview.BinCardMsg:
		m.engine.MoveToBin(msg.CardID, board.BinFor(msg.Edge))
		return m, m.persistCard(msg.CardID)

	case boardview.NewCardMsg:
		card := m.engine.CreateCard(msg.Target)
		return m.openEditor(card)

	case boardview.DuplicateCardMsg:
		return m.duplicateCard(msg.CardID)

	case binpanel.BackMsg:
		m.currentView = ViewBoard
		return m, nil

	case binpanel.RestoreMsg:
		m.engine.Restore(msg.CardID)
		return m, m.persistCard(msg.CardID)

	case binpanel.OpenCardMsg:
		return m.openCard(msg.CardID)

	case detail.CommitMsg:
		return m, m.saveCard(msg.Card)

	case detail.CommentSubmitMsg:
		return m, m.addComment(msg.CardID, msg.Content)

	case detail.DeleteSubtaskMsg:
		return m, m.deleteSubtask(msg.CardID, msg.SubtaskID)

	case detail.DeleteCardMsg:
		return m, m.deleteCard(msg.CardID)

	case detail.DuplicateMsg:
		// The duplicate carries a random placeholder id for immediate
		// rendering; the backend must still see a create.
		m.engine.AppendCard(msg.Card)
		return m, m.createCard(msg.Card)

	case detail.CloseMsg:
		m.detailOpen = false
		m.currentView = m.previousView
		if m.currentView == ViewDetail {
			m.currentView = ViewBoard
		}
		if msg.FinalSave != nil {
			return m, m.saveCard(*msg.FinalSave)
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if handled, model, cmd := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that apply regardless of the active
// view. Input-capturing views get first refusal.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	// The editor owns almost all keys while open.
	if m.currentView == ViewDetail {
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return true, m, tea.Quit
		}
		return false, m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		m.poller.Stop()
		return true, m, tea.Quit

	case "q":
		if m.currentView == ViewBoard {
			m.poller.Stop()
			return true, m, tea.Quit
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case ":":
		if m.currentView == ViewCommand {
			m.currentView = m.previousView
			return true, m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m, m.commandView.Focus()

	case "esc":
		if m.currentView == ViewCommand || m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, m, nil
		}

	case "b":
		if m.currentView == ViewBoard {
			m.cycleBoardFilter()
			return true, m, nil
		}

	case "v":
		if m.currentView == ViewBoard {
			if m.engine.ViewMode() == board.ViewGenius {
				m.engine.SetViewMode(board.ViewStage)
			} else {
				m.engine.SetViewMode(board.ViewGenius)
			}
			return true, m, nil
		}

	case "c":
		if m.currentView == ViewBoard {
			m.engine.SetShowCompleted(!m.engine.ShowCompleted())
			return true, m, nil
		}

	case "tab":
		if m.currentView == ViewBoard {
			m.cycleSort()
			return true, m, nil
		}

	case "r":
		if m.currentView == ViewBoard {
			m.loading = true
			m.poller.Refresh()
			return true, m, nil
		}

	case "1":
		if m.currentView == ViewBoard {
			m.previousView = m.currentView
			m.currentView = ViewDraftBin
			return true, m, nil
		}

	case "2":
		if m.currentView == ViewBoard {
			m.previousView = m.currentView
			m.currentView = ViewArchiveBin
			return true, m, nil
		}
	}

	return false, m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewDraftBin:
		m.draftBin, cmd = m.draftBin.Update(msg)
	case ViewArchiveBin:
		m.archiveBin, cmd = m.archiveBin.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch {
	case cmd == "refresh" || cmd == "sync":
		m.loading = true
		m.poller.Refresh()
		return m, nil
	case cmd == "quit" || cmd == "q":
		m.poller.Stop()
		return m, tea.Quit
	case cmd == "drafts":
		m.currentView = ViewDraftBin
		return m, nil
	case cmd == "archive":
		m.currentView = ViewArchiveBin
		return m, nil
	case cmd == "stages":
		m.engine.SetViewMode(board.ViewStage)
		return m, nil
	case cmd == "geniuses":
		m.engine.SetViewMode(board.ViewGenius)
		return m, nil
	case cmd == "completed":
		m.engine.SetShowCompleted(!m.engine.ShowCompleted())
		return m, nil
	case strings.HasPrefix(cmd, "board "):
		return m.selectBoard(strings.TrimSpace(strings.TrimPrefix(cmd, "board ")))
	case cmd == "board":
		m.engine.SetBoardFilter(model.AllProjectsBoard)
		m.boardIdx = 0
		return m, nil
	case strings.HasPrefix(cmd, "token"):
		return m, m.storeToken(strings.TrimSpace(strings.TrimPrefix(cmd, "token")))
	case strings.HasPrefix(cmd, "sort "):
		key := strings.TrimSpace(strings.TrimPrefix(cmd, "sort "))
		switch key {
		case "title":
			m.engine.SetSortKey(board.SortByTitle)
		case "due", "duedate":
			m.engine.SetSortKey(board.SortByDueDate)
		case "priority":
			m.engine.SetSortKey(board.SortByPriority)
		case "status":
			m.engine.SetSortKey(board.SortByStatus)
		}
		return m, nil
	default:
		return m, nil
	}
}

// selectBoard switches the board filter to a named board, matching
// case-insensitively against the master data board list.
func (m Model) selectBoard(name string) (tea.Model, tea.Cmd) {
	if m.master == nil {
		return m, nil
	}
	for i, b := range m.master.BoardNames() {
		if strings.EqualFold(b, name) {
			m.engine.SetBoardFilter(b)
			m.boardIdx = i + 1
			return m, nil
		}
	}
	m.errMessage = fmt.Sprintf("no board named %q", name)
	return m, nil
}

// openCard opens the editor for an existing card and kicks off a fetch
// of its comment thread.
func (m Model) openCard(cardID int) (tea.Model, tea.Cmd) {
	card, ok := m.engine.CardByID(cardID)
	if !ok {
		return m, nil
	}
	next, cmd := m.openEditor(card)
	if card.ID != 0 {
		return next, tea.Batch(cmd, m.loadComments(card.ID))
	}
	return next, cmd
}

func (m Model) openEditor(card model.Card) (tea.Model, tea.Cmd) {
	m.previousView = m.currentView
	m.currentView = ViewDetail
	m.detailView = detail.New(card, m.master, m.layout.ContentWidth(), m.layout.ContentHeight())
	m.detailOpen = true
	return m, m.detailView.Init()
}

func (m Model) duplicateCard(cardID int) (tea.Model, tea.Cmd) {
	card, ok := m.engine.CardByID(cardID)
	if !ok {
		return m, nil
	}
	dup := card.Clone()
	dup.ID = 0
	dup.Title = card.Title + " (Copy)"
	m.engine.AppendCard(dup)
	return m, m.saveCard(dup)
}

// handleRefresh applies a background refresh. Card state is left alone
// while the user is mid-edit or mid-drag so a refetch never clobbers
// local work; master data is always safe to adopt.
func (m Model) handleRefresh(msg appsync.RefreshResultMsg) (tea.Model, tea.Cmd) {
	waitCmd := m.poller.WaitForNextResult()
	m.loading = false

	if msg.Error != nil {
		if msg.AuthError {
			m.errMessage = "authentication failed; check GENIUSBOARD_API_TOKEN"
		} else {
			m.errMessage = fmt.Sprintf("refresh failed: %v", msg.Error)
		}
		return m, waitCmd
	}

	m.errMessage = ""
	m.master = msg.Master
	m.boardView.SetEmployees(msg.Master.Employees)

	if !m.detailOpen && !m.boardView.Carrying() {
		m.engine.SetCards(msg.Cards)
		m.fromCache = false
	}

	return m, tea.Batch(waitCmd, m.persistCache(msg.Master, msg.Cards))
}

func (m Model) handleCardSaved(msg cardSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errMessage = fmt.Sprintf("save failed: %v", msg.err)
		if m.detailOpen {
			m.detailView.ApplyError(msg.err)
		}
		return m, nil
	}

	m.errMessage = ""
	if msg.oldID != msg.card.ID {
		m.engine.ReplaceCardID(msg.oldID, msg.card.ID)
		if m.detailOpen && m.detailView.CardID() == msg.oldID {
			m.detailView.Session().AdoptID(msg.card.ID)
			m.detailView.Refresh()
		}
	}
	m.engine.UpsertCard(msg.card)
	if m.detailOpen && m.detailView.CardID() == msg.card.ID {
		m.detailView.ApplySaved()
	}
	return m, nil
}

// cycleBoardFilter steps through All Projects and each named board.
func (m *Model) cycleBoardFilter() {
	boards := []string{model.AllProjectsBoard}
	if m.master != nil {
		boards = append(boards, m.master.BoardNames()...)
	}
	m.boardIdx = (m.boardIdx + 1) % len(boards)
	m.engine.SetBoardFilter(boards[m.boardIdx])
}

func (m *Model) cycleSort() {
	order := []board.SortKey{
		board.SortByDueDate, board.SortByTitle,
		board.SortByPriority, board.SortByStatus,
	}
	for i, k := range order {
		if k == m.engine.SortKey() {
			m.engine.SetSortKey(order[(i+1)%len(order)])
			return
		}
	}
	m.engine.SetSortKey(order[0])
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.dataStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBoard:
		return m.boardView.View()
	case ViewDetail:
		return m.detailView.View()
	case ViewDraftBin:
		return m.draftBin.View()
	case ViewArchiveBin:
		return m.archiveBin.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

func (m Model) headerTitle() string {
	title := "Genius Board"
	if filter := m.engine.BoardFilter(); filter != model.AllProjectsBoard {
		title = fmt.Sprintf("Genius Board · %s", filter)
	}
	if m.engine.ViewMode() == board.ViewStage {
		title += " (stages)"
	}
	return title
}

func (m Model) dataStatus() string {
	switch {
	case m.loading:
		return "loading…"
	case m.poller.GetStatus().State == appsync.Failed:
		return "⚠ offline"
	case m.fromCache:
		return "cached"
	default:
		return "live"
	}
}

func (m Model) keyHints() string {
	if m.errMessage != "" && m.currentView == ViewBoard {
		return m.errMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewDetail:
		return "t title | e desc | s status | p priority | d due | a subtask | m comment | y dup | D delete | esc close"
	case ViewDraftBin, ViewArchiveBin:
		return "u restore | enter open | esc back"
	default:
		return "q quit | ? help | n new | space move | b board | v view | tab sort | 1 drafts | 2 archive"
	}
}
