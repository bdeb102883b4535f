package game

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- RoomHub ---

// recordingHub captures everything the room sends, in order.
type recordingHub struct {
	sent []sentMessage
}

type sentMessage struct {
	to  string // empty for broadcasts
	msg any
}

func (h *recordingHub) Broadcast(v any) {
	h.sent = append(h.sent, sentMessage{msg: v})
}

func (h *recordingHub) SendTo(playerID string, v any) {
	h.sent = append(h.sent, sentMessage{to: playerID, msg: v})
}

func (h *recordingHub) Bind(string, socketConn, func(event)) {}

func (h *recordingHub) reset() {
	h.sent = nil
}

func (h *recordingHub) broadcastToasts() []string {
	var toasts []string
	for _, s := range h.sent {
		if t, ok := s.msg.(toastMessage); ok && s.to == "" {
			toasts = append(toasts, t.Message)
		}
	}
	return toasts
}

func (h *recordingHub) toastsTo(playerID string) []string {
	var toasts []string
	for _, s := range h.sent {
		if t, ok := s.msg.(toastMessage); ok && s.to == playerID {
			toasts = append(toasts, t.Message)
		}
	}
	return toasts
}

func (h *recordingHub) rumbles() []rumbleMessage {
	var rumbles []rumbleMessage
	for _, s := range h.sent {
		if r, ok := s.msg.(rumbleMessage); ok {
			rumbles = append(rumbles, r)
		}
	}
	return rumbles
}

func (h *recordingHub) confettiRecipients() []string {
	var ids []string
	for _, s := range h.sent {
		if _, ok := s.msg.(confettiMessage); ok {
			ids = append(ids, s.to)
		}
	}
	return ids
}

func (h *recordingHub) lastState(t *testing.T) PublicState {
	t.Helper()
	for i := len(h.sent) - 1; i >= 0; i-- {
		if st, ok := h.sent[i].msg.(stateMessage); ok {
			return st.State
		}
	}
	require.Fail(t, "no game_state was broadcast")
	return PublicState{}
}

// --- Scheduler ---

// manualScheduler collects deferred callbacks for the test to fire by hand.
type manualScheduler struct {
	calls []scheduledCall
}

type scheduledCall struct {
	delay time.Duration
	fn    func()
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.calls = append(s.calls, scheduledCall{delay: d, fn: fn})
}

// fire runs the oldest pending callback, reporting whether there was one.
func (s *manualScheduler) fire() bool {
	if len(s.calls) == 0 {
		return false
	}
	call := s.calls[0]
	s.calls = s.calls[1:]
	call.fn()
	return true
}

// --- Clock ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// --- Source ---

// stubSource leaves shuffles alone and always picks the first candidate, so
// key sets come out alphabetical and the first non-mole becomes mole.
type stubSource struct{}

func (stubSource) Intn(int) int {
	return 0
}

func (stubSource) Shuffle(int, func(i, j int)) {}

// --- socketConn ---

type fakeSocket struct {
	in        chan []byte
	writes    chan []byte
	closeOnce sync.Once
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{
		in:     make(chan []byte, 8),
		writes: make(chan []byte, 64),
	}
}

func (s *fakeSocket) Read() ([]byte, error) {
	data, ok := <-s.in
	if !ok {
		return nil, io.EOF
	}
	return data, nil
}

func (s *fakeSocket) Write(data []byte) error {
	s.writes <- data
	return nil
}

func (s *fakeSocket) Ping() error {
	return nil
}

func (s *fakeSocket) Close() {
	s.closeOnce.Do(func() { close(s.in) })
}

type MockSocketConn struct {
	mock.Mock
	readRelease chan time.Time
}

func newMockSocketConn() *MockSocketConn {
	m := &MockSocketConn{readRelease: make(chan time.Time)}
	m.On("Read").WaitUntil(m.readRelease).Return([]byte(nil), errors.New("use of closed connection"))
	return m
}

func (m *MockSocketConn) Read() ([]byte, error) {
	args := m.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSocketConn) Write(data []byte) error {
	args := m.Called(data)
	return args.Error(0)
}

func (m *MockSocketConn) Ping() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockSocketConn) Close() {
	m.Called()
}

// --- helpers ---

func newTestRoom(t *testing.T) (*Room, *recordingHub, *manualScheduler, *fakeClock) {
	t.Helper()
	hub := &recordingHub{}
	sched := &manualScheduler{}
	clock := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	r := NewRoom("room-1", DefaultRules(), hub, stubSource{}, clock, sched, zerolog.Nop())
	return r, hub, sched, clock
}

// drain synchronously handles everything the timers posted to the inbox.
func drain(r *Room) {
	for {
		select {
		case ev := <-r.inbox:
			r.handle(ev)
		default:
			return
		}
	}
}

// runScheduled fires pending timers, and the timers they schedule, to
// completion.
func runScheduled(r *Room, sched *manualScheduler) {
	for sched.fire() {
		drain(r)
	}
}

func join(r *Room, playerID string) {
	r.handle(evConnOpened{playerID: playerID})
}

func say(r *Room, playerID string, msg ClientMessage) {
	r.handle(evMessage{playerID: playerID, msg: msg})
}

func moleOf(r *Room) *Player {
	return r.currentMole()
}

func recvWait(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for a frame")
		return nil
	}
}

func waitEvent(t *testing.T, ch chan event) event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		require.Fail(t, "timed out waiting for an event")
		return nil
	}
}
