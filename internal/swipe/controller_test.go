package swipe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
)

type manualScheduler struct {
	mu      sync.Mutex
	pending []func()
	delays  []time.Duration
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, f)
	s.delays = append(s.delays, d)
}

// fire ejecuta los callbacks pendientes en orden.
func (s *manualScheduler) fire() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()
	for _, f := range pending {
		f()
	}
}

type fakeSubmitter struct {
	mu    sync.Mutex
	votes []Vote
	err   error
	block chan struct{}
}

func (f *fakeSubmitter) SubmitVote(_ context.Context, v Vote) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.votes = append(f.votes, v)
	return f.err
}

func (f *fakeSubmitter) calls() []Vote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Vote(nil), f.votes...)
}

func testDeck() []domain.Official {
	return []domain.Official{
		{OfficialID: "OFF_0001", BioguideID: "A000370", Name: "Alma Adams"},
		{OfficialID: "OFF_0002", BioguideID: "A000055", Name: "Robert Aderholt"},
	}
}

func newTestController(sub Submitter) (*Controller, *manualScheduler) {
	sched := &manualScheduler{}
	c := NewController(zap.NewNop(), testDeck(), sub, WithScheduler(sched))
	return c, sched
}

func drag(c *Controller, dx float64) {
	c.PointerDown(10, 10)
	c.PointerMove(10+dx, 14)
	c.PointerUp()
}

func TestController_ReleaseBelowThresholdSnapsBack(t *testing.T) {
	for _, dx := range []float64{100, -100, 60, -45, 0} {
		sub := &fakeSubmitter{}
		c, sched := newTestController(sub)

		drag(c, dx)
		snap := c.Snapshot()
		if snap.State != StateSnapping {
			t.Fatalf("dx=%v: expected snapping, got %s", dx, snap.State)
		}
		if snap.OffsetX != 0 || snap.OffsetY != 0 {
			t.Fatalf("dx=%v: expected offset reset, got (%v,%v)", dx, snap.OffsetX, snap.OffsetY)
		}
		sched.fire()
		c.Wait()
		if c.State() != StateIdle || c.Snapshot().Index != 0 {
			t.Fatalf("dx=%v: expected idle on same card", dx)
		}
		if n := len(sub.calls()); n != 0 {
			t.Fatalf("dx=%v: expected no rating call, got %d", dx, n)
		}
	}
}

func TestController_CommitRightAndLeft(t *testing.T) {
	cases := []struct {
		dx        float64
		rating    int
		direction domain.Direction
	}{
		{150, LikeScore, domain.DirectionLike},
		{-150, DislikeScore, domain.DirectionDislike},
	}
	for _, tc := range cases {
		sub := &fakeSubmitter{}
		c, sched := newTestController(sub)

		drag(c, tc.dx)
		if c.State() != StateAnimating {
			t.Fatalf("dx=%v: expected animating, got %s", tc.dx, c.State())
		}
		c.Wait()
		calls := sub.calls()
		if len(calls) != 1 {
			t.Fatalf("dx=%v: expected exactly one call, got %d", tc.dx, len(calls))
		}
		if calls[0].Rating != tc.rating || calls[0].Direction != tc.direction || calls[0].BioguideID != "A000370" {
			t.Fatalf("dx=%v: unexpected vote %+v", tc.dx, calls[0])
		}
		if sched.delays[0] != AnimationDuration {
			t.Fatalf("expected %s animation, got %s", AnimationDuration, sched.delays[0])
		}

		sched.fire()
		snap := c.Snapshot()
		if snap.State != StateIdle || snap.Index != 1 || snap.OffsetX != 0 {
			t.Fatalf("dx=%v: expected idle on next card, got %+v", tc.dx, snap)
		}
	}
}

func TestController_DirectionHint(t *testing.T) {
	c, _ := newTestController(&fakeSubmitter{})
	c.PointerDown(0, 0)
	c.PointerMove(31, 0)
	if c.Snapshot().Hint != HintLike {
		t.Fatalf("expected like hint")
	}
	c.PointerMove(-31, 0)
	if c.Snapshot().Hint != HintNope {
		t.Fatalf("expected nope hint")
	}
	c.PointerMove(30, 0)
	if c.Snapshot().Hint != HintNone {
		t.Fatalf("expected no hint at threshold")
	}
	if c.State() != StateDragging {
		t.Fatalf("hint must not change state")
	}
}

func TestController_IgnoresInputWhileAnimating(t *testing.T) {
	sub := &fakeSubmitter{}
	c, sched := newTestController(sub)

	if !c.Vote(LikeScore, domain.DirectionLike) {
		t.Fatalf("expected first vote accepted")
	}
	if c.Vote(DislikeScore, domain.DirectionDislike) {
		t.Fatalf("expected button vote ignored while animating")
	}
	if c.PointerDown(0, 0) {
		t.Fatalf("expected pointer-down ignored while animating")
	}
	c.PointerMove(500, 0)
	c.PointerUp()
	c.Wait()

	if n := len(sub.calls()); n != 1 {
		t.Fatalf("expected single in-flight submission, got %d", n)
	}
	sched.fire()
	if c.Snapshot().Index != 1 {
		t.Fatalf("expected advance to next card")
	}
}

func TestController_FailureDoesNotBlockNavigation(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("network down"), block: make(chan struct{})}
	c, sched := newTestController(sub)

	c.Vote(LikeScore, domain.DirectionLike)
	// la animacion termina antes que el envio
	sched.fire()
	if snap := c.Snapshot(); snap.State != StateIdle || snap.Index != 1 {
		t.Fatalf("expected advance before submission completes, got %+v", snap)
	}
	close(sub.block)
	c.Wait()
	if len(sub.calls()) != 1 {
		t.Fatalf("expected submission attempted once")
	}
}

func TestController_IndexWrapsAndStats(t *testing.T) {
	c, sched := newTestController(nil)
	for _, r := range []int{80, 20, 80} {
		if !c.Vote(r, domain.DirectionForScore(float64(r))) {
			t.Fatalf("expected vote accepted")
		}
		sched.fire()
	}
	snap := c.Snapshot()
	if snap.Index != 1 {
		t.Fatalf("expected index to wrap to 1, got %d", snap.Index)
	}
	// 80, (80+20)/2=50, round((50*2+80)/3)=60
	if snap.Stats.RatedCount != 3 || snap.Stats.Approval != 60 {
		t.Fatalf("unexpected stats %+v", snap.Stats)
	}
	if snap.LastVote == nil || snap.LastVote.OfficialID != "OFF_0001" {
		t.Fatalf("unexpected last vote %+v", snap.LastVote)
	}
}

func TestController_EmptyDeckAndSnapRegrab(t *testing.T) {
	empty := NewController(zap.NewNop(), nil, &fakeSubmitter{}, WithScheduler(&manualScheduler{}))
	if empty.PointerDown(0, 0) || empty.Vote(80, domain.DirectionLike) {
		t.Fatalf("expected empty deck to ignore input")
	}

	c, sched := newTestController(&fakeSubmitter{})
	drag(c, 50)
	if !c.PointerDown(0, 0) {
		t.Fatalf("expected re-grab while snapping")
	}
	// el snap pendiente no debe pisar el nuevo arrastre
	sched.fire()
	if c.State() != StateDragging {
		t.Fatalf("expected stale snap to be ignored, got %s", c.State())
	}
}

func TestController_SetDeck(t *testing.T) {
	c, sched := newTestController(&fakeSubmitter{})
	c.Vote(LikeScore, domain.DirectionLike)
	if c.SetDeck(testDeck()[:1]) {
		t.Fatalf("expected deck swap refused while animating")
	}
	sched.fire()
	c.Wait()
	if !c.SetDeck(testDeck()[1:]) {
		t.Fatalf("expected deck swap when idle")
	}
	if snap := c.Snapshot(); snap.Index != 0 || snap.Official.BioguideID != "A000055" {
		t.Fatalf("unexpected snapshot after deck swap %+v", snap)
	}
}
