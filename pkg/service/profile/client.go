// Package profile implements the client for the external user-profile
// service. The recommender consumes a small slice of the profile: age,
// home city, previously used applications and free-text tags.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/domain/model"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/utils/safe"
)

// client implements interfaces.ProfileService
type client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	now        func() time.Time
}

var _ interfaces.ProfileService = &client{}

type Option func(*client)

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithClock overrides the clock used for age derivation
func WithClock(now func() time.Time) Option {
	return func(c *client) {
		c.now = now
	}
}

// New creates a new profile service client. baseURL points at the profile
// host, credentials are HTTP basic auth.
func New(baseURL, username, password string, opts ...Option) (interfaces.ProfileService, error) {
	if baseURL == "" {
		return nil, goerr.New("profile service base URL is required")
	}

	c := &client{
		baseURL:    baseURL,
		username:   username,
		password:   password,
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// userMetadata is the wire format of the profile endpoint
type userMetadata struct {
	UsedApps []struct {
		AppID int64 `json:"appID"`
	} `json:"usedApps"`
	Birthdate *string  `json:"birthdate"`
	City      string   `json:"city"`
	UserTags  []string `json:"userTags"`
}

func (c *client) GetUser(ctx context.Context, userID string) (*model.UserProfile, error) {
	reqURL := fmt.Sprintf("%s/dev/api/cdv/getusermetadata/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build profile request", goerr.V("userID", userID))
	}
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "profile request failed",
			goerr.V("userID", userID), goerr.T(types.ErrTagService))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, goerr.New("profile service returned non-200",
			goerr.V("userID", userID), goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)), goerr.T(types.ErrTagService))
	}

	var meta userMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, goerr.Wrap(err, "failed to decode profile response",
			goerr.V("userID", userID), goerr.T(types.ErrTagService))
	}

	user := &model.UserProfile{
		UserID:       userID,
		Age:          model.UnknownAge,
		HomeLocation: meta.City,
		Tags:         meta.UserTags,
	}
	for _, app := range meta.UsedApps {
		user.UsedAppIDs = append(user.UsedAppIDs, types.ArtifactID(app.AppID))
	}
	if meta.Birthdate != nil && *meta.Birthdate != "" {
		age, err := c.ageFromBirthdate(*meta.Birthdate)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid birthdate in profile",
				goerr.V("userID", userID), goerr.V("birthdate", *meta.Birthdate),
				goerr.T(types.ErrTagService))
		}
		user.Age = age
	}

	return user, nil
}

var birthdateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ageFromBirthdate derives the user's age in full years, correcting for
// whether the birthday has passed this year
func (c *client) ageFromBirthdate(birthdate string) (int, error) {
	var born time.Time
	var err error
	for _, layout := range birthdateLayouts {
		born, err = time.Parse(layout, birthdate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0, goerr.Wrap(err, "unparseable birthdate")
	}

	today := c.now().UTC()
	age := today.Year() - born.Year()
	if today.Month() < born.Month() ||
		(today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age, nil
}
