package out_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	catalogout "niamverse/internal/modules/catalog/adapter/out"
	"niamverse/internal/modules/catalog/domain"
)

const sampleJSON = `{"games":[
  {"id":2,"name":"A Dark Room","category":"action","genre":"Text Adventure","featured":true,"about":"Wake up.","link":"https://example.com/adr","developer":"Doublespeak"},
  {"id":10,"name":"Tactics","category":"strategy","genre":"Board"}
]}`

const sampleYAML = `games:
  - id: 2
    name: A Dark Room
    category: action
    genre: Text Adventure
    featured: true
  - id: 10
    name: Tactics
    category: strategy
    genre: Board
`

func TestFileSourceJSONAndYAML(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	decoder := catalogout.NewSchemaDecoder()

	for name, body := range map[string]string{"games.json": sampleJSON, "games.yml": sampleYAML} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		raw, err := catalogout.NewSource(path).Fetch(context.Background())
		require.NoError(t, err)
		doc, err := decoder.Decode(raw)
		require.NoError(t, err, name)
		require.Len(t, doc.Games, 2)
		require.Equal(t, "A Dark Room", doc.Games[0].Name)
		require.True(t, doc.Games[0].Featured)
		require.Equal(t, 10, doc.Games[1].ID)
	}
}

func TestFileSourceMissingFile(t *testing.T) {
	t.Parallel()
	_, err := catalogout.NewFileSource(filepath.Join(t.TempDir(), "nope.json")).Fetch(context.Background())
	require.Error(t, err)
}

func TestHTTPSourceFetch(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/games.json":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	src := catalogout.NewSource(srv.URL + "/games.json")
	require.True(t, catalogout.IsRemote(src.Location()))
	raw, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.FormatJSON, raw.Format)
	doc, err := catalogout.NewSchemaDecoder().Decode(raw)
	require.NoError(t, err)
	require.Len(t, doc.Games, 2)
	require.Equal(t, "Doublespeak", doc.Games[0].Developer)

	_, err = catalogout.NewSource(srv.URL + "/missing.json").Fetch(context.Background())
	require.ErrorContains(t, err, "unexpected status")
}

func TestSchemaDecoderRejectsMalformed(t *testing.T) {
	t.Parallel()
	decoder := catalogout.NewSchemaDecoder()
	cases := map[string]domain.RawDocument{
		"empty":        {Format: domain.FormatJSON, Data: []byte("  ")},
		"syntax":       {Format: domain.FormatJSON, Data: []byte(`{"games":[`)},
		"missing name": {Format: domain.FormatJSON, Data: []byte(`{"games":[{"id":1}]}`)},
		"string id":    {Format: domain.FormatYAML, Data: []byte("games:\n  - id: one\n    name: x\n")},
		"yaml syntax":  {Format: domain.FormatYAML, Data: []byte("games: [\n")},
	}
	for name, raw := range cases {
		_, err := decoder.Decode(raw)
		require.Error(t, err, name)
	}
}

func TestFormatFor(t *testing.T) {
	t.Parallel()
	require.Equal(t, domain.FormatYAML, domain.FormatFor("catalog.YAML"))
	require.Equal(t, domain.FormatYAML, domain.FormatFor("https://cdn.example.com/games.yml?v=2"))
	require.Equal(t, domain.FormatJSON, domain.FormatFor("games.json"))
	require.Equal(t, domain.FormatJSON, domain.FormatFor("games"))
}
