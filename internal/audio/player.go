package audio

import (
	"errors"
	"sync"
)

// ErrNoSink reports a playback attempt with no delivery sink.
var ErrNoSink = errors.New("audio: no sink")

// Handle is a stoppable in-progress playback owned by a Sink.
type Handle interface {
	Stop()
}

// Sink plays a decoded clip asynchronously and invokes onDone exactly once
// when playback reaches the natural end of the buffer. A stopped handle
// must not invoke onDone.
type Sink interface {
	Start(clip Clip, onDone func()) (Handle, error)
}

// Session is one playback of one clip. Done is closed on both natural
// completion and explicit stop, exactly once.
type Session struct {
	mu      sync.Mutex
	handle  Handle
	playing bool
	done    chan struct{}
	once    sync.Once
}

func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Stop ends playback early and releases the source handle. Safe to call
// concurrently and after completion.
func (s *Session) Stop() {
	s.finish(true)
}

func (s *Session) finish(stopHandle bool) {
	s.once.Do(func() {
		s.mu.Lock()
		h := s.handle
		s.handle = nil
		s.playing = false
		s.mu.Unlock()
		if stopHandle && h != nil {
			h.Stop()
		}
		close(s.done)
	})
}

// Player enforces the single-active-playback invariant: starting a new
// session stops any prior one first.
type Player struct {
	mu      sync.Mutex
	sink    Sink
	current *Session
}

func NewPlayer(sink Sink) *Player {
	return &Player{sink: sink}
}

// Play stops the current session, if any, and starts clip on the
// player's default sink. On sink failure the player is left idle.
func (p *Player) Play(clip Clip) (*Session, error) {
	return p.PlayOn(p.sink, clip)
}

// PlayOn is Play with an explicit sink, for callers whose delivery
// target varies per clip.
func (p *Player) PlayOn(sink Sink, clip Clip) (*Session, error) {
	if sink == nil {
		return nil, ErrNoSink
	}

	p.mu.Lock()
	prior := p.current
	p.current = nil
	p.mu.Unlock()

	if prior != nil {
		prior.Stop()
	}

	session := &Session{done: make(chan struct{}), playing: true}
	handle, err := sink.Start(clip, func() { session.finish(false) })
	if err != nil {
		session.finish(false)
		return nil, err
	}

	session.mu.Lock()
	session.handle = handle
	session.mu.Unlock()

	p.mu.Lock()
	p.current = session
	p.mu.Unlock()
	return session, nil
}

// StopAll stops the active session, if any.
func (p *Player) StopAll() {
	p.mu.Lock()
	current := p.current
	p.current = nil
	p.mu.Unlock()
	if current != nil {
		current.Stop()
	}
}

// Active reports whether a session is currently playing.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.Playing()
}
