package service_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	catalogout "niamverse/internal/modules/catalog/adapter/out"
	"niamverse/internal/modules/catalog/domain"
	"niamverse/internal/modules/catalog/service"
	apperrors "niamverse/internal/platform/errors"
)

type fakeSource struct {
	docs []domain.RawDocument
	errs []error
	idx  int
}

func (f *fakeSource) Location() string { return "memory://games.json" }

func (f *fakeSource) Fetch(context.Context) (domain.RawDocument, error) {
	i := f.idx
	if i >= len(f.docs) {
		i = len(f.docs) - 1
	}
	f.idx++
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return f.docs[i], err
}

func jsonDoc(body string) domain.RawDocument {
	return domain.RawDocument{Location: "memory://games.json", Format: domain.FormatJSON, Data: []byte(body)}
}

func TestLoadInstallsCatalog(t *testing.T) {
	t.Parallel()
	src := &fakeSource{docs: []domain.RawDocument{jsonDoc(`{"games":[{"id":2,"name":"A Dark Room","category":"action","genre":"Text","featured":true},{"id":10,"name":"Tactics","category":"strategy","genre":"Board"}]}`)}}
	svc := service.NewCatalogService(src, catalogout.NewSchemaDecoder(), zap.NewNop())

	report := svc.Load(context.Background())
	if report.Fallback || report.Games != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	game, err := svc.Get(10)
	if err != nil || game.Name != "Tactics" {
		t.Fatalf("get 10: %+v %v", game, err)
	}
	if _, err := svc.Get(3); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	sel := svc.Select(domain.Query{Section: domain.SectionTrending}, nil, nil)
	if len(sel.Games) != 1 || sel.Games[0].ID != 2 {
		t.Fatalf("unexpected trending selection %+v", sel)
	}
}

func TestLoadFallsBackToEmptyCatalog(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  *fakeSource
	}{
		{name: "fetch error", src: &fakeSource{docs: []domain.RawDocument{{}}, errs: []error{errors.New("connection refused")}}},
		{name: "not json", src: &fakeSource{docs: []domain.RawDocument{jsonDoc(`<html>`)}}},
		{name: "schema violation", src: &fakeSource{docs: []domain.RawDocument{jsonDoc(`{"games":[{"id":"two","name":"x"}]}`)}}},
		{name: "missing games key", src: &fakeSource{docs: []domain.RawDocument{jsonDoc(`{"items":[]}`)}}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			core, logs := observer.New(zapcore.WarnLevel)
			svc := service.NewCatalogService(tc.src, catalogout.NewSchemaDecoder(), zap.New(core))
			report := svc.Load(context.Background())
			if !report.Fallback || report.Reason == "" {
				t.Fatalf("expected fallback report, got %+v", report)
			}
			if svc.Catalog().Len() != 0 {
				t.Fatalf("expected empty catalog")
			}
			if logs.FilterMessage("catalog unavailable, using empty catalog").Len() != 1 {
				t.Fatalf("fallback must be logged, got %v", logs.All())
			}
		})
	}
}

func TestReloadFailureReplacesPreviousCatalog(t *testing.T) {
	t.Parallel()
	src := &fakeSource{
		docs: []domain.RawDocument{jsonDoc(`{"games":[{"id":1,"name":"One"}]}`), jsonDoc(`{broken`)},
	}
	svc := service.NewCatalogService(src, catalogout.NewSchemaDecoder(), nil)
	if report := svc.Load(context.Background()); report.Games != 1 {
		t.Fatalf("first load: %+v", report)
	}
	if report := svc.Load(context.Background()); !report.Fallback {
		t.Fatalf("second load should fall back: %+v", report)
	}
	if svc.Catalog().Len() != 0 {
		t.Fatalf("a failed reload installs the empty catalog")
	}
}

func TestLoadReportsDuplicateIDs(t *testing.T) {
	t.Parallel()
	src := &fakeSource{docs: []domain.RawDocument{jsonDoc(`{"games":[{"id":1,"name":"One"},{"id":1,"name":"Again"}]}`)}}
	core, logs := observer.New(zapcore.WarnLevel)
	svc := service.NewCatalogService(src, catalogout.NewSchemaDecoder(), zap.New(core))
	report := svc.Load(context.Background())
	if report.Games != 1 || len(report.Dropped) != 1 || report.Dropped[0] != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if logs.FilterMessage("duplicate game ids dropped").Len() != 1 {
		t.Fatalf("expected duplicate warning, got %v", logs.All())
	}
}
