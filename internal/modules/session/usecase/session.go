package usecase

import (
	"context"

	catalogin "niamverse/internal/modules/catalog/port/in"
	"niamverse/internal/modules/session/domain"
	"niamverse/internal/modules/session/dto"
	sessionin "niamverse/internal/modules/session/port/in"
	sessionout "niamverse/internal/modules/session/port/out"
	"niamverse/internal/modules/session/service"
	apperrors "niamverse/internal/platform/errors"
)

const cloakMessage = "Tab cloaking applied!"

type Interactor struct {
	svc     *service.SessionService
	catalog catalogin.Usecase
	recents sessionout.RecentRecorder
}

func NewInteractor(svc *service.SessionService, catalog catalogin.Usecase, recents sessionout.RecentRecorder) sessionin.Usecase {
	return &Interactor{svc: svc, catalog: catalog, recents: recents}
}

func (i *Interactor) OpenEntry(ctx context.Context, input dto.OpenInput) (dto.OpenOutput, error) {
	game, err := i.catalog.GetGame(ctx, input.GameID)
	if err != nil {
		return dto.OpenOutput{}, err
	}

	out := dto.OpenOutput{}
	if i.recents != nil {
		recorded, err := i.recents.RecordRecent(ctx, game.ID)
		if err != nil {
			return dto.OpenOutput{}, err
		}
		out.Recorded = recorded.Added
		out.Recents = recorded.Recents
	}

	out.Launched = i.svc.Open(ctx, domain.Entry{
		GameID: game.ID,
		Name:   game.Name,
		About:  game.About,
		Link:   game.Link,
	}, input.Launch)
	out.Entry = toEntryOutput(i.svc.Snapshot())
	return out, nil
}

func (i *Interactor) CloseEntry(ctx context.Context) (dto.CloseOutput, error) {
	prev, ok := i.svc.Close(ctx)
	if !ok {
		return dto.CloseOutput{}, nil
	}
	return dto.CloseOutput{Closed: true, GameID: prev.GameID, Name: prev.Name}, nil
}

func (i *Interactor) Current(context.Context) (dto.EntryOutput, error) {
	return toEntryOutput(i.svc.Snapshot()), nil
}

func (i *Interactor) SetRating(_ context.Context, stars int) (dto.EntryOutput, error) {
	s, err := i.svc.SetRating(stars)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(s), nil
}

func (i *Interactor) SetNotes(_ context.Context, notes string) (dto.EntryOutput, error) {
	s, err := i.svc.SetNotes(notes)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	return toEntryOutput(s), nil
}

func (i *Interactor) SubmitRating(ctx context.Context, notes string) (dto.SubmitOutput, error) {
	r, err := i.svc.Submit(ctx, notes)
	if err != nil {
		return dto.SubmitOutput{}, err
	}
	return dto.SubmitOutput{
		RatingID:    r.ID,
		GameID:      r.GameID,
		GameName:    r.GameName,
		Stars:       r.Stars,
		Notes:       r.Notes,
		SubmittedAt: r.SubmittedAt,
		Message:     r.ThankYou(),
	}, nil
}

func (i *Interactor) Share(context.Context) (dto.ShareOutput, error) {
	entry, ok := i.svc.Snapshot().Current()
	if !ok {
		return dto.ShareOutput{}, apperrors.ErrNoOpenEntry
	}
	return dto.ShareOutput{Text: domain.ShareText(entry.Name), Link: entry.Link}, nil
}

func (i *Interactor) Cloak(context.Context) (dto.CloakOutput, error) {
	c := i.svc.Cloak()
	return dto.CloakOutput{Title: c.Title, Icon: c.Icon}, nil
}

func (i *Interactor) ApplyCloak(_ context.Context, title, icon string) (dto.CloakOutput, error) {
	c := i.svc.ApplyCloak(title, icon)
	return dto.CloakOutput{Title: c.Title, Icon: c.Icon, Message: cloakMessage}, nil
}

func (i *Interactor) Embed(ctx context.Context, url string) (dto.EmbedOutput, error) {
	target, launched, err := i.svc.Embed(ctx, url)
	if err != nil {
		return dto.EmbedOutput{}, err
	}
	return dto.EmbedOutput{URL: target, Launched: launched}, nil
}

func toEntryOutput(s domain.Session) dto.EntryOutput {
	entry, ok := s.Current()
	if !ok {
		return dto.EntryOutput{}
	}
	return dto.EntryOutput{
		Open:   true,
		GameID: entry.GameID,
		Name:   entry.Name,
		About:  entry.About,
		Link:   entry.Link,
		Rating: s.Rating(),
		Notes:  s.Notes(),
	}
}
