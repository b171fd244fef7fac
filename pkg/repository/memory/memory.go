package memory

import (
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository backend, used for development mode and
// tests. It mirrors the Firestore backend behavior including the
// unordered-pair upsert rule for similarity edges.
type Memory struct {
	artifact   *artifactRepository
	similarity *similarityRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		artifact:   newArtifactRepository(),
		similarity: newSimilarityRepository(),
	}
}

func (m *Memory) Artifact() interfaces.ArtifactRepository {
	return m.artifact
}

func (m *Memory) Similarity() interfaces.SimilarityRepository {
	return m.similarity
}

func (m *Memory) Close() error {
	return nil
}
