package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
)

const (
	collectionArtifacts    = "artifacts"
	collectionSimilarities = "similarities"
)

type Firestore struct {
	client     *firestore.Client
	artifact   *artifactRepository
	similarity *similarityRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	return &Firestore{
		client:     client,
		artifact:   newArtifactRepository(client),
		similarity: newSimilarityRepository(client),
	}, nil
}

func (f *Firestore) Artifact() interfaces.ArtifactRepository {
	return f.artifact
}

func (f *Firestore) Similarity() interfaces.SimilarityRepository {
	return f.similarity
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
