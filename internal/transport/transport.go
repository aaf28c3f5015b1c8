package transport

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// DefaultInterval is the real-time length of one tick.
const DefaultInterval = time.Second

// DefaultVolume is the starting volume when none is configured.
const DefaultVolume = 50

// Options configures a [Machine].
type Options struct {
	Interval  time.Duration // defaults to [DefaultInterval]
	NewTicker TickerFunc    // defaults to [NewTimeTicker]
	Logger    *log.Logger   // defaults to [shared.NewLogger]
	Volume    *int          // defaults to [DefaultVolume]
}

// Machine is the transport state machine. All methods are safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	interval  time.Duration
	newTicker TickerFunc
	logger    *log.Logger

	track    *models.Track
	status   models.Status
	elapsed  int
	total    int
	progress float64
	volume   int

	generation uint64
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	subs   map[string]chan models.PlaybackState
	closed bool
}

// New creates an idle Machine.
func New(opts Options) *Machine {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.NewTicker == nil {
		opts.NewTicker = NewTimeTicker
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	volume := DefaultVolume
	if opts.Volume != nil {
		volume = clampInt(*opts.Volume, 0, 100)
	}

	return &Machine{
		interval:  opts.Interval,
		newTicker: opts.NewTicker,
		logger:    shared.WithLogger(opts.Logger, "component", "transport"),
		status:    models.StatusIdle,
		volume:    volume,
		subs:      make(map[string]chan models.PlaybackState),
	}
}

// SelectTrack makes t the current track and starts playing it from 0.
//
// A track whose duration is malformed or zero is rejected with [shared.ErrInvalidDurationFormat] and the
// previous state is left untouched.
func (m *Machine) SelectTrack(t models.Track) error {
	total, err := t.Seconds()
	if err != nil {
		m.logger.Warn("rejected track", "id", t.ID, "duration", t.Duration, "err", err)
		return fmt.Errorf("failed to select track %q: %w", t.ID, err)
	}
	if total <= 0 {
		m.logger.Warn("rejected track", "id", t.ID, "duration", t.Duration, "err", "non-positive length")
		return fmt.Errorf("failed to select track %q: %w: non-positive length", t.ID, shared.ErrInvalidDurationFormat)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return shared.ErrTransportClosed
	}

	m.stopScheduler()

	m.track = &t
	m.total = total
	m.elapsed = 0
	m.progress = 0
	m.status = models.StatusPlaying

	m.startScheduler()
	m.logger.Debug("track selected", "id", t.ID, "title", t.Title, "total", total)
	m.publish()
	return nil
}

// Toggle switches between playing and paused. A stopped track starts again from 0. With no track it does nothing.
func (m *Machine) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.track == nil {
		return
	}

	switch m.status {
	case models.StatusPlaying:
		m.stopScheduler()
		m.status = models.StatusPaused
	case models.StatusPaused, models.StatusStopped:
		m.status = models.StatusPlaying
		m.startScheduler()
	}

	m.logger.Debug("toggled", "status", m.status, "elapsed", m.elapsed)
	m.publish()
}

// Seek moves to percent of the track. Out-of-range values are clamped to 0-100; NaN counts as 0.
//
// The play state is kept, except that a stopped track becomes paused at the new position.
// With no track it does nothing.
func (m *Machine) Seek(percent float64) {
	if math.IsNaN(percent) {
		percent = 0
	}
	percent = math.Max(0, math.Min(100, percent))

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.track == nil {
		return
	}

	m.elapsed = int(math.Round(percent / 100 * float64(m.total)))
	m.progress = percent
	if m.status == models.StatusStopped {
		m.status = models.StatusPaused
	}

	m.logger.Debug("seek", "percent", percent, "elapsed", m.elapsed)
	m.publish()
}

// Tick advances a playing track by one second. It does nothing unless playing.
//
// The scheduler calls this once per interval; callers driving their own clock may call it directly.
func (m *Machine) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || m.status != models.StatusPlaying {
		return
	}
	m.advance()
}

// SetVolume sets the volume, clamped to 0-100.
func (m *Machine) SetVolume(v int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.volume = clampInt(v, 0, 100)
	m.publish()
}

// State returns a snapshot of the current playback state.
func (m *Machine) State() models.PlaybackState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Subscribe returns a channel that receives the current state immediately and a new snapshot after every change.
//
// The channel is closed by the returned cancel func or by [Machine.Close].
func (m *Machine) Subscribe() (<-chan models.PlaybackState, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan models.PlaybackState, 1)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := shared.GenerateID()
	ch <- m.snapshot()
	m.subs[id] = ch

	return ch, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if c, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(c)
		}
	}
}

// Close cancels the scheduler, closes every subscription and waits for the scheduler goroutine to exit.
// Later calls on the Machine are no-ops.
func (m *Machine) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.stopScheduler()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
	m.mu.Unlock()

	m.wg.Wait()
	m.logger.Debug("closed")
}

// advance applies one tick. Reaching the end rewinds to 0 and stops, keeping the track. Caller holds mu.
func (m *Machine) advance() {
	m.elapsed++
	if m.elapsed >= m.total {
		m.stopScheduler()
		m.status = models.StatusStopped
		m.elapsed = 0
		m.progress = 0
		m.logger.Debug("track ended", "id", m.track.ID)
	} else {
		m.progress = float64(m.elapsed) / float64(m.total) * 100
	}
	m.publish()
}

// startScheduler launches a new scheduler generation. Caller holds mu.
func (m *Machine) startScheduler() {
	m.generation++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	ticker := m.newTicker(m.interval)
	m.wg.Add(1)
	go m.run(ctx, m.generation, ticker)
}

// stopScheduler cancels the running generation, if any. Caller holds mu.
func (m *Machine) stopScheduler() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.generation++
}

func (m *Machine) run(ctx context.Context, gen uint64, ticker Ticker) {
	defer m.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			m.tickGeneration(gen)
		}
	}
}

// tickGeneration applies a scheduled tick unless gen has been superseded.
func (m *Machine) tickGeneration(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed || gen != m.generation || m.status != models.StatusPlaying {
		return
	}
	m.advance()
}

// snapshot copies the state. Caller holds mu.
func (m *Machine) snapshot() models.PlaybackState {
	s := models.PlaybackState{
		Status:   m.status,
		Playing:  m.status == models.StatusPlaying,
		Elapsed:  m.elapsed,
		Total:    m.total,
		Progress: m.progress,
		Volume:   m.volume,
	}
	if m.track != nil {
		t := *m.track
		s.Track = &t
	}
	return s
}

// publish replaces whatever snapshot each subscriber has not read yet with the current one. Caller holds mu.
func (m *Machine) publish() {
	s := m.snapshot()
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
