package bootstrap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"niamverse/internal/bootstrap"
	sessionoutadapter "niamverse/internal/modules/session/adapter/out"
	"niamverse/internal/platform/config"
)

const gamesJSON = `{"games":[
  {"id":1,"name":"Slope","category":"arcade","genre":"Runner","featured":true},
  {"id":481,"name":"Retro Bowl","category":"sports","genre":"Football"}
]}`

func newApp(t *testing.T, dir string) *bootstrap.App {
	t.Helper()
	t.Setenv("NIAMVERSE_WATCH", "false")
	cfg, err := config.New(dir, "")
	require.NoError(t, err)
	app, err := bootstrap.New(cfg,
		bootstrap.WithLogger(zap.NewNop()),
		bootstrap.WithLauncher(sessionoutadapter.NewNoopLauncher()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.json"), []byte(gamesJSON), 0o644))
	ctx := context.Background()

	first := newApp(t, dir)
	_, err := first.StateCLI.ToggleFavorite(ctx, 481)
	require.NoError(t, err)
	_, err = first.SessionCLI.Play(ctx, 1, false)
	require.NoError(t, err)
	_, err = first.StateCLI.SetTheme(ctx, "forest")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := newApp(t, dir)
	state, err := second.StateCLI.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{481}, state.Favorites)
	assert.Equal(t, []int{1}, state.Recents)
	assert.Equal(t, "forest", state.Theme)

	newest, err := second.CatalogCLI.Browse(ctx, "new", "", "")
	require.NoError(t, err)
	require.Len(t, newest.Games, 1)
	assert.Equal(t, "Retro Bowl", newest.Games[0].Name)
	assert.True(t, newest.Games[0].Favorite)
}

func TestMissingCatalogStartsEmpty(t *testing.T) {
	app := newApp(t, t.TempDir())
	out, err := app.CatalogCLI.Browse(context.Background(), "home", "all", "")
	require.NoError(t, err)
	assert.True(t, out.Empty)
}

func TestCloseFlushesFileLogger(t *testing.T) {
	t.Setenv("NIAMVERSE_WATCH", "false")
	t.Setenv("NIAMVERSE_LOG_FILE", "")
	dir := t.TempDir()
	cfg, err := config.New(dir, "")
	require.NoError(t, err)
	app, err := bootstrap.New(cfg, bootstrap.WithLauncher(sessionoutadapter.NewNoopLauncher()))
	require.NoError(t, err)
	require.NoError(t, app.Close())

	b, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "catalog unavailable, using empty catalog")
}
