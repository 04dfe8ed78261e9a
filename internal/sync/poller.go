package sync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/genius-board/internal/api"
	"github.com/nhle/genius-board/internal/model"
)

// State represents the current state of a background refresh.
type State int

const (
	Idle State = iota
	Running
	Failed
)

// Status holds the refresh state of the backend connection.
type Status struct {
	State    State
	LastSync time.Time
	Error    error
}

// RefreshResultMsg is a tea.Msg sent when a background refresh completes.
type RefreshResultMsg struct {
	Master    *model.MasterData
	Cards     []model.Card
	Error     error
	AuthError bool
}

// fetchTimeout is the maximum time allowed for a single refresh.
const fetchTimeout = 30 * time.Second

// DefaultInterval is the refresh cadence when the config leaves it unset.
const DefaultInterval = 120 * time.Second

// Poller keeps the board fresh by refetching master data and projects
// from the backend on an interval.
type Poller struct {
	client   *api.Client
	interval time.Duration
	status   Status

	resultCh  chan RefreshResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	mu        gosync.Mutex
	running   bool
}

// New creates a Poller for the given backend client.
func New(client *api.Client, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		client:    client,
		interval:  interval,
		resultCh:  make(chan RefreshResultMsg, 4),
		triggerCh: make(chan struct{}, 4),
		stopCh:    make(chan struct{}),
	}
}

// Start launches the refresh goroutine and returns a command that waits
// for the first result.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	go p.loop()

	return p.waitForResult()
}

// Stop halts the refresh goroutine.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// Refresh triggers an immediate fetch outside the regular cadence.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued.
	}
}

// GetStatus returns the current refresh status.
func (p *Poller) GetStatus() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// loop runs the refresh cycle until stopped. The first fetch happens
// immediately so startup does not wait a full interval.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.fetch()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetch()
		case <-p.triggerCh:
			p.fetch()
		}
	}
}

// fetch performs one refresh and delivers the result.
func (p *Poller) fetch() {
	p.setStatus(Running, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	master, err := p.client.GetMasterData(ctx)
	if err != nil {
		p.fail(err)
		return
	}

	cards, err := p.client.ListProjects(ctx)
	if err != nil {
		p.fail(err)
		return
	}

	p.setStatus(Idle, nil)
	p.sendResult(RefreshResultMsg{Master: master, Cards: cards})
}

func (p *Poller) fail(err error) {
	p.setStatus(Failed, err)

	authErr := false
	if reqErr, ok := api.AsRequestError(err); ok {
		authErr = reqErr.Status == 401 || reqErr.Status == 403
	}
	p.sendResult(RefreshResultMsg{Error: err, AuthError: authErr})
}

func (p *Poller) setStatus(state State, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status.State = state
	p.status.Error = err
	if state == Idle && err == nil {
		p.status.LastSync = time.Now()
	}
}

// sendResult delivers a result without blocking the refresh goroutine.
func (p *Poller) sendResult(msg RefreshResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the UI is not draining results.
	}
}

// waitForResult returns a command that waits for the next result.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult should be called after processing a RefreshResultMsg
// to keep listening for future refreshes.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
