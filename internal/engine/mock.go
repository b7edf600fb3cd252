package engine

import (
	"sync"

	"playkit/internal/source"
)

// Mock is a scriptable engine test double. Tests drive the listener by
// calling ReportState / ReportLoadError / ReportFatalError explicitly, which
// models the asynchronous delivery contract without goroutines.
type Mock struct {
	mu sync.Mutex

	listener Listener

	prepareCalls []source.Media
	seekCalls    []int64
	stopCalls    int
	creates      int

	playWhenReady bool
	duration      int64
	position      int64
	buffered      int
	released      bool
}

// NewMock creates a mock engine.
func NewMock() *Mock {
	return &Mock{}
}

// Factory returns an engine factory handing out this mock and counting
// creations.
func (m *Mock) Factory() Factory {
	return func(l Listener) (Engine, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.creates++
		m.listener = l
		return m, nil
	}
}

func (m *Mock) Prepare(media source.Media) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareCalls = append(m.prepareCalls, media)
}

func (m *Mock) SetPlayWhenReady(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playWhenReady = on
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
}

func (m *Mock) SeekTo(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, ms)
}

func (m *Mock) Duration() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *Mock) Position() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) BufferedPercent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffered
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
}

// Test helpers

// ReportState delivers a state-change notification to the bound listener.
func (m *Mock) ReportState(playWhenReady bool, state RawState) {
	m.mu.Lock()
	l := m.listener
	m.mu.Unlock()
	if l != nil {
		l.OnStateChanged(playWhenReady, state)
	}
}

// ReportLoadError delivers a load error to the bound listener.
func (m *Mock) ReportLoadError(err error) {
	m.mu.Lock()
	l := m.listener
	m.mu.Unlock()
	if l != nil {
		l.OnLoadError(err)
	}
}

// ReportFatalError delivers a fatal error to the bound listener.
func (m *Mock) ReportFatalError(err error) {
	m.mu.Lock()
	l := m.listener
	m.mu.Unlock()
	if l != nil {
		l.OnFatalError(err)
	}
}

func (m *Mock) SetDuration(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = ms
}

func (m *Mock) SetPosition(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = ms
}

func (m *Mock) SetBufferedPercent(pct int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buffered = pct
}

func (m *Mock) PrepareCalls() []source.Media {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]source.Media(nil), m.prepareCalls...)
}

func (m *Mock) SeekCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.seekCalls...)
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) Creates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.creates
}

func (m *Mock) PlayWhenReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playWhenReady
}

func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
