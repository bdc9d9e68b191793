package usecase

import (
	"context"
	"fmt"

	"niamverse/internal/modules/catalog/domain"
	"niamverse/internal/modules/catalog/dto"
	catalogin "niamverse/internal/modules/catalog/port/in"
	catalogout "niamverse/internal/modules/catalog/port/out"
	"niamverse/internal/modules/catalog/service"
	userstatein "niamverse/internal/modules/userstate/port/in"
)

type Interactor struct {
	svc     *service.CatalogService
	state   userstatein.Usecase
	watcher catalogout.Watcher
}

// NewInteractor wires the catalog to the user state it filters by. watcher may be
// nil when the catalog source cannot change underneath the process.
func NewInteractor(svc *service.CatalogService, state userstatein.Usecase, watcher catalogout.Watcher) catalogin.Usecase {
	return &Interactor{svc: svc, state: state, watcher: watcher}
}

func (i *Interactor) Load(ctx context.Context) (dto.LoadOutput, error) {
	return toLoadOutput(i.svc.Load(ctx)), nil
}

func (i *Interactor) Browse(ctx context.Context, input dto.BrowseInput) (dto.BrowseOutput, error) {
	var favorites, recents []int
	if i.state != nil {
		state, err := i.state.Snapshot(ctx)
		if err != nil {
			return dto.BrowseOutput{}, err
		}
		favorites, recents = state.Favorites, state.Recents
	}
	selection := i.svc.Select(domain.Query{
		Section:  domain.Section(input.Section),
		Category: input.Category,
		Search:   input.Search,
	}, favorites, recents)

	favSet := make(map[int]struct{}, len(favorites))
	for _, id := range favorites {
		favSet[id] = struct{}{}
	}
	games := make([]dto.GameOutput, 0, len(selection.Games))
	for _, g := range selection.Games {
		_, fav := favSet[g.ID]
		games = append(games, toGameOutput(g, fav))
	}
	return dto.BrowseOutput{
		Section:       string(selection.Section),
		Title:         selection.Title,
		Games:         games,
		Empty:         len(games) == 0,
		FavoriteCount: len(favorites),
	}, nil
}

func (i *Interactor) GetGame(ctx context.Context, id int) (dto.GameOutput, error) {
	game, err := i.svc.Get(id)
	if err != nil {
		return dto.GameOutput{}, err
	}
	favorite := false
	if i.state != nil {
		state, err := i.state.Snapshot(ctx)
		if err != nil {
			return dto.GameOutput{}, err
		}
		for _, fav := range state.Favorites {
			if fav == id {
				favorite = true
				break
			}
		}
	}
	return toGameOutput(game, favorite), nil
}

func (i *Interactor) Categories(context.Context) ([]string, error) {
	return i.svc.Catalog().Categories(), nil
}

// Watch reloads the catalog on every change and hands the report to onReload.
func (i *Interactor) Watch(ctx context.Context, onReload func(dto.LoadOutput)) (func(), error) {
	if i.watcher == nil {
		return func() {}, nil
	}
	stop, err := i.watcher.Watch(ctx, func() {
		report := i.svc.Load(ctx)
		if onReload != nil {
			onReload(toLoadOutput(report))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("watch catalog: %w", err)
	}
	return stop, nil
}

func toLoadOutput(r domain.LoadReport) dto.LoadOutput {
	return dto.LoadOutput{Location: r.Location, Games: r.Games, Dropped: r.Dropped, Fallback: r.Fallback, Reason: r.Reason}
}

func toGameOutput(g domain.Game, favorite bool) dto.GameOutput {
	return dto.GameOutput{
		ID:          g.ID,
		Name:        g.Name,
		Category:    g.Category,
		Genre:       g.Genre,
		Featured:    g.Featured,
		About:       g.About,
		Link:        g.Link,
		Popularity:  g.Popularity,
		ReleaseDate: g.ReleaseDate,
		Build:       g.Build,
		Developer:   g.Developer,
		Controls:    g.Controls,
		Favorite:    favorite,
	}
}
