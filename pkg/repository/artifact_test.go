package repository_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/repository/firestore"
	"github.com/opencity-lab/musette/pkg/repository/memory"
)

// testIDBase keeps artifact IDs unique across test runs so Firestore runs
// do not collide with leftover data.
var testIDBase = types.ArtifactID(time.Now().UnixNano() % 1_000_000_000 * 1_000)

func testArtifactID(n int64) types.ArtifactID {
	return testIDBase + types.ArtifactID(n)
}

func runArtifactRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get roundtrip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		artifact := &model.Artifact{
			ID:   testArtifactID(1),
			Kind: types.KindDataset,
			Lang: "spanish",
			Tags: []string{"tag1", "tag2"},
		}
		created, err := repo.Artifact().Create(ctx, artifact)
		gt.NoError(t, err).Required()
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()

		retrieved, err := repo.Artifact().Get(ctx, artifact.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Kind).Equal(types.KindDataset)
		gt.Array(t, retrieved.Tags).Length(2)
	})

	t.Run("Create rejects a taken ID across kinds", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := testArtifactID(2)
		_, err := repo.Artifact().Create(ctx, &model.Artifact{
			ID: id, Kind: types.KindDataset, Lang: "english",
		})
		gt.NoError(t, err).Required()

		_, err = repo.Artifact().Create(ctx, &model.Artifact{
			ID: id, Kind: types.KindBuildingBlock, Lang: "english",
		})
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.ErrTagBadRequest)).True()
	})

	t.Run("Get missing artifact is not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Artifact().Get(ctx, testArtifactID(999))
		gt.Value(t, err).NotNil()
		gt.Bool(t, goerr.HasTag(err, types.ErrTagNotFound)).True()
	})

	t.Run("Update keeps kind fixed", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := testArtifactID(3)
		_, err := repo.Artifact().Create(ctx, &model.Artifact{
			ID: id, Kind: types.KindIdea, Lang: "english", Tags: []string{"tag1"},
		})
		gt.NoError(t, err).Required()

		updated, err := repo.Artifact().Update(ctx, &model.Artifact{
			ID: id, Kind: types.KindIdea, Lang: "english", Tags: []string{"tag1", "tag3"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, updated.Tags).Length(2)

		_, err = repo.Artifact().Update(ctx, &model.Artifact{
			ID: id, Kind: types.KindDataset, Lang: "english",
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("List filters by kind and wildcard lists all", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		fixtures := []*model.Artifact{
			{ID: testArtifactID(10), Kind: types.KindDataset, Lang: "english"},
			{ID: testArtifactID(11), Kind: types.KindDataset, Lang: "english"},
			{ID: testArtifactID(12), Kind: types.KindApplication, Lang: "english", Scope: "Bilbao"},
		}
		for _, a := range fixtures {
			_, err := repo.Artifact().Create(ctx, a)
			gt.NoError(t, err).Required()
		}

		datasets, err := repo.Artifact().List(ctx, types.KindDataset)
		gt.NoError(t, err).Required()
		gt.Array(t, datasets).Length(2)

		all, err := repo.Artifact().List(ctx, types.KindAny)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)
	})

	t.Run("ListApplicationsByMaxAge gates by minimum age", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		fixtures := []*model.Artifact{
			{ID: testArtifactID(20), Kind: types.KindApplication, Lang: "english", Scope: "Bilbao", MinAge: 13},
			{ID: testArtifactID(21), Kind: types.KindApplication, Lang: "english", Scope: "Bilbao", MinAge: 18},
			{ID: testArtifactID(22), Kind: types.KindApplication, Lang: "english", Scope: "Bilbao", MinAge: 21},
			{ID: testArtifactID(23), Kind: types.KindDataset, Lang: "english"},
		}
		for _, a := range fixtures {
			_, err := repo.Artifact().Create(ctx, a)
			gt.NoError(t, err).Required()
		}

		apps, err := repo.Artifact().ListApplicationsByMaxAge(ctx, 18)
		gt.NoError(t, err).Required()
		gt.Array(t, apps).Length(2)
		for _, app := range apps {
			gt.Bool(t, app.MinAge <= 18).True()
		}
	})

	t.Run("Delete removes the artifact", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		id := testArtifactID(30)
		_, err := repo.Artifact().Create(ctx, &model.Artifact{
			ID: id, Kind: types.KindDataset, Lang: "english",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Artifact().Delete(ctx, id)).Required()
		_, err = repo.Artifact().Get(ctx, id)
		gt.Value(t, err).NotNil()
		gt.Value(t, repo.Artifact().Delete(ctx, id)).NotNil()
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}
	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemoryArtifactRepository(t *testing.T) {
	runArtifactRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreArtifactRepository(t *testing.T) {
	runArtifactRepositoryTest(t, newFirestoreRepository)
}
