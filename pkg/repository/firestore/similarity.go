package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"google.golang.org/api/iterator"
)

// similarityDoc is the Firestore document representation of
// model.Similarity. The document ID is the canonical "min-max" pair key, so
// a Set on an existing pair replaces the value instead of duplicating the
// unordered pair. SourceID/TargetID keep the computed-from direction.
type similarityDoc struct {
	SourceID  int64     `firestore:"SourceID"`
	TargetID  int64     `firestore:"TargetID"`
	Value     float64   `firestore:"Value"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toSimilarityDoc(s *model.Similarity) *similarityDoc {
	return &similarityDoc{
		SourceID:  int64(s.SourceID),
		TargetID:  int64(s.TargetID),
		Value:     s.Value,
		CreatedAt: s.CreatedAt,
	}
}

func docToSimilarity(doc *firestore.DocumentSnapshot) (*model.Similarity, error) {
	var d similarityDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return &model.Similarity{
		SourceID:  types.ArtifactID(d.SourceID),
		TargetID:  types.ArtifactID(d.TargetID),
		Value:     d.Value,
		CreatedAt: d.CreatedAt,
	}, nil
}

type similarityRepository struct {
	client *firestore.Client
}

func newSimilarityRepository(client *firestore.Client) *similarityRepository {
	return &similarityRepository{client: client}
}

func (r *similarityRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionSimilarities)
}

func (r *similarityRepository) ReplaceAll(ctx context.Context, edges []*model.Similarity) error {
	for _, edge := range edges {
		if err := edge.Validate(); err != nil {
			return goerr.Wrap(err, "invalid similarity edge")
		}
	}
	if len(edges) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		for _, edge := range edges {
			stored := *edge
			stored.CreatedAt = now
			if err := tx.Set(r.collection().Doc(edge.PairKey()), toSimilarityDoc(&stored)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return goerr.Wrap(err, "failed to replace similarity edges", goerr.V("count", len(edges)))
	}
	return nil
}

func (r *similarityRepository) ListInvolving(ctx context.Context, id types.ArtifactID) ([]*model.Similarity, error) {
	// The pair is stored once in an arbitrary direction, so both endpoint
	// fields have to be queried.
	bySource, err := r.runQuery(ctx, r.collection().
		Where("SourceID", "==", int64(id)).
		OrderBy("Value", firestore.Desc))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list similarities by source", goerr.V("id", id))
	}

	byTarget, err := r.runQuery(ctx, r.collection().
		Where("TargetID", "==", int64(id)).
		OrderBy("Value", firestore.Desc))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list similarities by target", goerr.V("id", id))
	}

	merged := append(bySource, byTarget...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Value > merged[j].Value
	})
	return merged, nil
}

func (r *similarityRepository) DeleteInvolving(ctx context.Context, id types.ArtifactID) error {
	for _, field := range []string{"SourceID", "TargetID"} {
		iter := r.collection().Where(field, "==", int64(id)).Documents(ctx)
		bw := r.client.BulkWriter(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to iterate similarities", goerr.V("id", id))
			}
			if _, err := bw.Delete(doc.Ref); err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to queue similarity delete", goerr.V("id", id))
			}
		}
		iter.Stop()
		bw.End()
	}
	return nil
}

func (r *similarityRepository) runQuery(ctx context.Context, query firestore.Query) ([]*model.Similarity, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	edges := make([]*model.Similarity, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		edge, err := docToSimilarity(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal similarity")
		}
		edges = append(edges, edge)
	}
	return edges, nil
}
