package audio

import (
	"errors"
	"testing"
	"time"
)

// fakeSink records started playbacks and lets tests drive completion.
type fakeSink struct {
	handles []*fakeHandle
	err     error
}

type fakeHandle struct {
	stopped bool
	onDone  func()
}

func (h *fakeHandle) Stop() { h.stopped = true }

func (s *fakeSink) Start(clip Clip, onDone func()) (Handle, error) {
	if s.err != nil {
		return nil, s.err
	}
	h := &fakeHandle{onDone: onDone}
	s.handles = append(s.handles, h)
	return h, nil
}

func waitDone(t *testing.T, s *Session) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("session never completed")
	}
}

func TestPlayerNaturalCompletion(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(sink)

	session, err := player.Play(Clip{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Playing() {
		t.Fatal("session should be playing")
	}

	sink.handles[0].onDone()
	waitDone(t, session)

	if session.Playing() {
		t.Error("session still playing after natural end")
	}
	if sink.handles[0].stopped {
		t.Error("natural completion must not call Stop on the handle")
	}
}

func TestPlayerExplicitStop(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(sink)

	session, _ := player.Play(Clip{})
	session.Stop()
	waitDone(t, session)

	if !sink.handles[0].stopped {
		t.Error("explicit stop must release the handle")
	}
	if session.Playing() {
		t.Error("session still playing after stop")
	}
	// Stop again: must not panic or re-close Done.
	session.Stop()
}

func TestPlayerSingleActiveSession(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(sink)

	first, _ := player.Play(Clip{})
	second, _ := player.Play(Clip{})

	waitDone(t, first)
	if !sink.handles[0].stopped {
		t.Error("starting a new session must stop the prior one")
	}
	if !second.Playing() {
		t.Error("second session should be the active one")
	}
	if !player.Active() {
		t.Error("player should report an active session")
	}
}

func TestPlayerSinkFailureLeavesIdle(t *testing.T) {
	sink := &fakeSink{err: errors.New("device busy")}
	player := NewPlayer(sink)

	if _, err := player.Play(Clip{}); err == nil {
		t.Fatal("expected sink error")
	}
	if player.Active() {
		t.Error("player must stay idle after a failed start")
	}
}

func TestPlayerNilSinkRejected(t *testing.T) {
	player := NewPlayer(nil)

	if _, err := player.Play(Clip{}); !errors.Is(err, ErrNoSink) {
		t.Fatalf("err = %v, want ErrNoSink", err)
	}
	if player.Active() {
		t.Error("player should stay idle with no sink")
	}

	sink := &fakeSink{}
	session, err := player.PlayOn(sink, Clip{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.Playing() {
		t.Error("explicit sink should still play")
	}
}

func TestPlayerStopAll(t *testing.T) {
	sink := &fakeSink{}
	player := NewPlayer(sink)

	session, _ := player.Play(Clip{})
	player.StopAll()
	waitDone(t, session)

	if player.Active() {
		t.Error("player active after StopAll")
	}
}
