package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/cli/config"
)

func TestRecommenderConfigure(t *testing.T) {
	t.Run("no file keeps defaults", func(t *testing.T) {
		cfg, err := config.NewRecommenderForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Number(t, cfg.MaxEditDistance).Equal(2)
		gt.Number(t, cfg.MinScore).Equal(0.0)
		gt.Number(t, cfg.TopUsedTags).Equal(5)
		gt.Value(t, cfg.FallbackRegion).Equal("europe")
	})

	t.Run("file overrides only the given tunables", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recommender.toml")
		content := `
max_edit_distance = 1
min_score = 0.2
`
		gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()

		cfg, err := config.NewRecommenderForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Number(t, cfg.MaxEditDistance).Equal(1)
		gt.Number(t, cfg.MinScore).Equal(0.2)
		gt.Number(t, cfg.TopUsedTags).Equal(5)
		gt.Value(t, cfg.FallbackRegion).Equal("europe")
	})

	t.Run("invalid tunable fails validation", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "recommender.toml")
		gt.NoError(t, os.WriteFile(path, []byte("min_score = 1.5\n"), 0644)).Required()

		_, err := config.NewRecommenderForTest(path).Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidConfig)).True()
	})

	t.Run("missing file is reported as such", func(t *testing.T) {
		_, err := config.NewRecommenderForTest("/no/such/file.toml").Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
	})
}

func TestLoggerConfigure(t *testing.T) {
	t.Run("valid settings", func(t *testing.T) {
		closer, err := config.NewLoggerForTest("info", "json", "stderr").Configure()
		gt.NoError(t, err).Required()
		closer()
	})

	t.Run("unknown level is rejected", func(t *testing.T) {
		_, err := config.NewLoggerForTest("verbose", "console", "-").Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidLogLevel)).True()
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		_, err := config.NewLoggerForTest("info", "xml", "-").Configure()
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidLogFormat)).True()
	})
}

func TestRepositoryConfigure(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		repo, err := config.NewRepositoryForTest("memory", "", "").Configure(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, repo).NotNil()
		gt.NoError(t, repo.Close())
	})

	t.Run("firestore backend requires a project ID", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("firestore", "", "").Configure(ctx)
		gt.Error(t, err)
	})

	t.Run("unknown backend is rejected", func(t *testing.T) {
		_, err := config.NewRepositoryForTest("redis", "", "").Configure(ctx)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, config.ErrInvalidBackend)).True()
	})
}
