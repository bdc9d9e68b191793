package in

import (
	"context"

	"niamverse/internal/modules/catalog/dto"
	catalogin "niamverse/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context) (dto.LoadOutput, error) {
	return h.usecase.Load(ctx)
}

func (h CLIHandler) Browse(ctx context.Context, section, category, search string) (dto.BrowseOutput, error) {
	return h.usecase.Browse(ctx, dto.BrowseInput{Section: section, Category: category, Search: search})
}

func (h CLIHandler) GetGame(ctx context.Context, id int) (dto.GameOutput, error) {
	return h.usecase.GetGame(ctx, id)
}

func (h CLIHandler) Categories(ctx context.Context) ([]string, error) {
	return h.usecase.Categories(ctx)
}

func (h CLIHandler) Watch(ctx context.Context, onReload func(dto.LoadOutput)) (func(), error) {
	return h.usecase.Watch(ctx, onReload)
}
