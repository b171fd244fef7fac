package usecase_test

import (
	"context"

	"github.com/opencity-lab/musette/pkg/domain/model"
)

// fakeGeocoder resolves places from a fixed table. Places missing from the
// table resolve to nothing, places in errs fail the lookup.
type fakeGeocoder struct {
	points map[string]*model.Location
	errs   map[string]error
	calls  int
}

func (x *fakeGeocoder) Geocode(_ context.Context, place string) (*model.Location, error) {
	x.calls++
	if err, ok := x.errs[place]; ok {
		return nil, err
	}
	return x.points[place], nil
}

type fakeProfileService struct {
	users map[string]*model.UserProfile
	err   error
}

func (x *fakeProfileService) GetUser(_ context.Context, userID string) (*model.UserProfile, error) {
	if x.err != nil {
		return nil, x.err
	}
	return x.users[userID], nil
}

// syncQueue runs tasks inline so tests observe their effects immediately
type syncQueue struct {
	names []string
	errs  []error
}

func (x *syncQueue) Enqueue(ctx context.Context, name string, task func(ctx context.Context) error) {
	x.names = append(x.names, name)
	x.errs = append(x.errs, task(ctx))
}
