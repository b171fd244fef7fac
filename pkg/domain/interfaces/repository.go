package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Artifact() ArtifactRepository
	Similarity() SimilarityRepository

	Close() error
}
