package interfaces

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/model"
)

// ProfileService fetches user metadata from the external profile
// collaborator. Failures propagate to the caller; the recommender does not
// degrade without a profile.
type ProfileService interface {
	GetUser(ctx context.Context, userID string) (*model.UserProfile, error)
}
