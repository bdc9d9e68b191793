package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	sessionout "niamverse/internal/modules/session/adapter/out"
	"niamverse/internal/modules/session/domain"
	"niamverse/internal/modules/session/service"
	"niamverse/internal/platform/clock"
	apperrors "niamverse/internal/platform/errors"
)

type staticID string

func (s staticID) New() string { return string(s) }

type recordingSink struct {
	ratings []domain.Rating
	err     error
}

func (r *recordingSink) Emit(_ context.Context, rating domain.Rating) error {
	r.ratings = append(r.ratings, rating)
	return r.err
}

type failingLauncher struct{}

func (failingLauncher) Open(context.Context, string) error {
	return errors.New("no display")
}

func (failingLauncher) Stop(context.Context) error {
	return nil
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSubmitStampsAndEmits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sink := &recordingSink{}
	svc := service.NewSessionService(clock.Fixed(fixedNow), staticID("r-1"), sink, sessionout.NewNoopLauncher(), nil)

	svc.Open(ctx, domain.Entry{GameID: 1, Name: "Slope"}, false)
	if _, err := svc.SetRating(5); err != nil {
		t.Fatalf("set rating: %v", err)
	}
	r, err := svc.Submit(ctx, "great")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := domain.Rating{ID: "r-1", GameID: 1, GameName: "Slope", Stars: 5, Notes: "great", SubmittedAt: fixedNow}
	if r != want {
		t.Fatalf("expected %+v, got %+v", want, r)
	}
	if len(sink.ratings) != 1 || sink.ratings[0] != want {
		t.Fatalf("sink did not receive rating: %+v", sink.ratings)
	}
}

func TestRejectedSubmitKeepsDraftNotes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sink := &recordingSink{}
	svc := service.NewSessionService(clock.Fixed(fixedNow), staticID("r-3"), sink, nil, nil)

	svc.Open(ctx, domain.Entry{GameID: 4, Name: "Snake"}, false)
	if _, err := svc.SetNotes("typed earlier"); err != nil {
		t.Fatalf("set notes: %v", err)
	}
	if _, err := svc.Submit(ctx, "typed at submit"); !errors.Is(err, apperrors.ErrRatingRequired) {
		t.Fatalf("expected ErrRatingRequired, got %v", err)
	}
	if got := svc.Snapshot().Notes(); got != "typed earlier" {
		t.Fatalf("rejected submit changed notes draft to %q", got)
	}
	if len(sink.ratings) != 0 {
		t.Fatalf("rejected submit reached the sink: %+v", sink.ratings)
	}

	_, _ = svc.SetRating(2)
	r, err := svc.Submit(ctx, "typed at submit")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.Notes != "typed at submit" {
		t.Fatalf("rating should carry submitted notes, got %q", r.Notes)
	}
	if svc.Snapshot().Notes() != "" {
		t.Fatalf("notes draft not reset after submit")
	}
}

func TestSinkFailureIsLoggedAndDraftStillResets(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	sink := &recordingSink{err: errors.New("sink down")}
	svc := service.NewSessionService(clock.Fixed(fixedNow), staticID("r-2"), sink, nil, zap.New(core))

	svc.Open(ctx, domain.Entry{GameID: 2, Name: "Tetris"}, false)
	_, _ = svc.SetRating(3)
	if _, err := svc.Submit(ctx, ""); err != nil {
		t.Fatalf("submit should succeed when sink fails: %v", err)
	}
	if svc.Snapshot().Rating() != 0 {
		t.Fatalf("draft should reset")
	}
	if logs.FilterMessage("emit rating failed").Len() != 1 {
		t.Fatalf("expected sink failure to be logged, got %v", logs.All())
	}
}

func TestOpenLaunchesLinkAndCloseStops(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	launcher := sessionout.NewNoopLauncher()
	svc := service.NewSessionService(clock.SystemClock{}, staticID("x"), nil, launcher, nil)

	if !svc.Open(ctx, domain.Entry{GameID: 4, Name: "Run", Link: "https://example.com/run"}, true) {
		t.Fatalf("expected launch")
	}
	if svc.Open(ctx, domain.Entry{GameID: 5, Name: "Offline"}, true) {
		t.Fatalf("entry without link must not launch")
	}
	if got := launcher.Opened(); len(got) != 1 || got[0] != "https://example.com/run" {
		t.Fatalf("unexpected launches %v", got)
	}
	if _, ok := svc.Close(ctx); !ok {
		t.Fatalf("close should report the open entry")
	}
	if _, ok := svc.Close(ctx); ok {
		t.Fatalf("second close should report nothing")
	}
	if launcher.Stops() != 1 {
		t.Fatalf("expected one stop, got %d", launcher.Stops())
	}
}

func TestLaunchFailureKeepsEntryOpen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	core, logs := observer.New(zapcore.WarnLevel)
	svc := service.NewSessionService(clock.SystemClock{}, staticID("x"), nil, failingLauncher{}, zap.New(core))

	if svc.Open(ctx, domain.Entry{GameID: 4, Name: "Run", Link: "https://example.com/run"}, true) {
		t.Fatalf("launch should report failure")
	}
	if !svc.Snapshot().IsOpen() {
		t.Fatalf("entry should stay open")
	}
	if logs.FilterMessage("launch game failed").Len() != 1 {
		t.Fatalf("expected launch failure log")
	}
	if _, _, err := svc.Embed(ctx, "https://example.com"); err == nil {
		t.Fatalf("embed should surface launcher failure")
	}
}

func TestApplyCloakReplacesCurrent(t *testing.T) {
	t.Parallel()
	svc := service.NewSessionService(clock.SystemClock{}, staticID("x"), nil, nil, nil)
	if c := svc.Cloak(); c.Title != domain.DefaultCloakTitle {
		t.Fatalf("unexpected initial cloak %+v", c)
	}
	svc.ApplyCloak("Docs", "")
	if c := svc.Cloak(); c.Title != "Docs" || c.Icon != domain.DefaultCloakIcon {
		t.Fatalf("unexpected cloak %+v", c)
	}
}
