package phase

import (
	"testing"
	"time"
)

func TestNextTransition(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantPhase Phase
		wantAt    time.Time
	}{
		{"upcoming points at start", startsAt.Add(-time.Hour), Live, startsAt},
		{"at start points at end", startsAt, Voting, endsAt},
		{"live points at end", startsAt.Add(time.Hour), Voting, endsAt},
		{"at end points at voting close", endsAt, Completed, votingEndsAt},
		{"voting points at voting close", endsAt.Add(time.Minute), Completed, votingEndsAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextTransition(tt.now, startsAt, endsAt, votingEndsAt)
			if got == nil {
				t.Fatal("NextTransition returned nil before completion")
			}
			if got.Phase != tt.wantPhase || !got.At.Equal(tt.wantAt) {
				t.Errorf("NextTransition = {%v %v}, want {%v %v}", got.Phase, got.At, tt.wantPhase, tt.wantAt)
			}
		})
	}
}

func TestNextTransitionNilOnlyWhenCompleted(t *testing.T) {
	// nil exactly when the resolved phase is completed, never before.
	probes := []time.Time{
		startsAt.Add(-time.Second),
		startsAt,
		endsAt.Add(-time.Second),
		endsAt,
		votingEndsAt.Add(-time.Second),
		votingEndsAt,
		votingEndsAt.Add(time.Hour),
	}
	for _, now := range probes {
		got := NextTransition(now, startsAt, endsAt, votingEndsAt)
		completed := Resolve(now, startsAt, endsAt, votingEndsAt) == Completed
		if (got == nil) != completed {
			t.Errorf("at %v: nil=%v but completed=%v", now, got == nil, completed)
		}
	}
}

func TestNextTransitionAgreesWithResolve(t *testing.T) {
	// Resolving at the returned boundary instant must yield the phase the
	// transition named.
	for now := startsAt.Add(-time.Minute); now.Before(votingEndsAt); now = now.Add(13 * time.Minute) {
		tr := NextTransition(now, startsAt, endsAt, votingEndsAt)
		if tr == nil {
			t.Fatalf("nil transition at %v", now)
		}
		if got := Resolve(tr.At, startsAt, endsAt, votingEndsAt); got != tr.Phase {
			t.Errorf("at %v: transition names %v but Resolve(boundary) = %v", now, tr.Phase, got)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{-time.Minute, "0s"},
		{0, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m 0s"},
		{90 * time.Second, "1m 30s"},
		{time.Hour, "1h 0m"},
		{3*time.Hour + 25*time.Minute, "3h 25m"},
		{24 * time.Hour, "1d 0h"},
		{49*time.Hour + 59*time.Minute, "2d 1h"},
	}

	for _, tt := range tests {
		if got := FormatRemaining(tt.d); got != tt.want {
			t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
