package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/domain/interfaces"
	"github.com/opencity-lab/musette/pkg/service/profile"
	"github.com/urfave/cli/v3"
)

// Profile holds CLI flags for the external user-profile service. The
// password is tagged for redaction so config logging never leaks it.
type Profile struct {
	host     string
	username string
	password string `masq:"secret"`
}

// Flags returns CLI flags for profile service configuration
func (p *Profile) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile-host",
			Usage:       "Base URL of the user profile service",
			Sources:     cli.EnvVars("MUSETTE_PROFILE_HOST"),
			Destination: &p.host,
		},
		&cli.StringFlag{
			Name:        "profile-user",
			Usage:       "Basic auth username for the profile service",
			Sources:     cli.EnvVars("MUSETTE_PROFILE_USER"),
			Destination: &p.username,
		},
		&cli.StringFlag{
			Name:        "profile-password",
			Usage:       "Basic auth password for the profile service",
			Sources:     cli.EnvVars("MUSETTE_PROFILE_PASSWORD"),
			Destination: &p.password,
		},
	}
}

// IsConfigured reports whether a profile service host was given
func (p *Profile) IsConfigured() bool {
	return p.host != ""
}

// Configure builds the profile service client
func (p *Profile) Configure() (interfaces.ProfileService, error) {
	if p.host == "" {
		return nil, goerr.Wrap(ErrMissingProfile, "profile service not configured")
	}

	svc, err := profile.New(p.host, p.username, p.password)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build profile service client", goerr.V("host", p.host))
	}
	return svc, nil
}
