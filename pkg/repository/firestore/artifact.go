package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// artifactDoc is the Firestore document representation of model.Artifact.
// Tags are stored denormalized as a string array; the document ID is the
// decimal artifact ID, which enforces the single identity space across
// kinds.
type artifactDoc struct {
	ID        int64     `firestore:"ID"`
	Kind      string    `firestore:"Kind"`
	Lang      string    `firestore:"Lang"`
	Tags      []string  `firestore:"Tags"`
	Scope     string    `firestore:"Scope"`
	MinAge    int       `firestore:"MinAge"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toArtifactDoc(a *model.Artifact) *artifactDoc {
	return &artifactDoc{
		ID:        int64(a.ID),
		Kind:      a.Kind.String(),
		Lang:      a.Lang,
		Tags:      a.Tags,
		Scope:     a.Scope,
		MinAge:    a.MinAge,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func fromArtifactDoc(d *artifactDoc) *model.Artifact {
	return &model.Artifact{
		ID:        types.ArtifactID(d.ID),
		Kind:      types.ArtifactKind(d.Kind),
		Lang:      d.Lang,
		Tags:      d.Tags,
		Scope:     d.Scope,
		MinAge:    d.MinAge,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func docToArtifact(doc *firestore.DocumentSnapshot) (*model.Artifact, error) {
	var d artifactDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromArtifactDoc(&d), nil
}

type artifactRepository struct {
	client *firestore.Client
}

func newArtifactRepository(client *firestore.Client) *artifactRepository {
	return &artifactRepository{client: client}
}

func (r *artifactRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionArtifacts)
}

func (r *artifactRepository) Create(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	now := time.Now().UTC()
	created := *artifact
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.collection().Doc(created.ID.String())
	if _, err := docRef.Create(ctx, toArtifactDoc(&created)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(err, "artifact ID already exists",
				goerr.V("id", created.ID), goerr.T(types.ErrTagBadRequest))
		}
		return nil, goerr.Wrap(err, "failed to create artifact", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *artifactRepository) Update(ctx context.Context, artifact *model.Artifact) (*model.Artifact, error) {
	current, err := r.Get(ctx, artifact.ID)
	if err != nil {
		return nil, err
	}
	if current.Kind != artifact.Kind {
		return nil, goerr.New("artifact kind cannot change",
			goerr.V("id", artifact.ID), goerr.V("kind", current.Kind),
			goerr.V("requested", artifact.Kind), goerr.T(types.ErrTagBadRequest))
	}

	updated := *artifact
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	docRef := r.collection().Doc(updated.ID.String())
	if _, err := docRef.Set(ctx, toArtifactDoc(&updated)); err != nil {
		return nil, goerr.Wrap(err, "failed to update artifact", goerr.V("id", updated.ID))
	}
	return &updated, nil
}

func (r *artifactRepository) Get(ctx context.Context, id types.ArtifactID) (*model.Artifact, error) {
	doc, err := r.collection().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(err, "artifact not found",
				goerr.V("id", id), goerr.T(types.ErrTagNotFound))
		}
		return nil, goerr.Wrap(err, "failed to get artifact", goerr.V("id", id))
	}

	artifact, err := docToArtifact(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal artifact", goerr.V("id", id))
	}
	return artifact, nil
}

func (r *artifactRepository) List(ctx context.Context, kind types.ArtifactKind) ([]*model.Artifact, error) {
	query := r.collection().Query
	if kind != types.KindAny {
		query = query.Where("Kind", "==", kind.String())
	}
	return r.runQuery(ctx, query)
}

func (r *artifactRepository) ListApplicationsByMaxAge(ctx context.Context, maxAge int) ([]*model.Artifact, error) {
	query := r.collection().
		Where("Kind", "==", types.KindApplication.String()).
		Where("MinAge", "<=", maxAge)
	return r.runQuery(ctx, query)
}

func (r *artifactRepository) runQuery(ctx context.Context, query firestore.Query) ([]*model.Artifact, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	artifacts := make([]*model.Artifact, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate artifacts")
		}

		artifact, err := docToArtifact(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal artifact")
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

func (r *artifactRepository) Delete(ctx context.Context, id types.ArtifactID) error {
	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	if _, err := r.collection().Doc(id.String()).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete artifact", goerr.V("id", id))
	}
	return nil
}
