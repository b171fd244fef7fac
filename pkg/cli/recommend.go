package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/cli/config"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/usecase"
	"github.com/opencity-lab/musette/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdRecommend queries the stored similarity edges from the command line,
// for debugging recommendation results without an HTTP round trip.
func cmdRecommend() *cli.Command {
	var repoCfg config.Repository

	return &cli.Command{
		Name:      "recommend",
		Usage:     "Show recommendations for an artifact",
		ArgsUsage: "<artifact-id> <kind>",
		Flags:     repoCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return goerr.New("artifact ID and target kind arguments are required")
			}
			id, err := types.ParseArtifactID(c.Args().Get(0))
			if err != nil {
				return err
			}
			kind, err := types.ParseArtifactKind(c.Args().Get(1))
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)
			ids, err := uc.Recommend.Recommend(ctx, id, kind)
			if err != nil {
				return goerr.Wrap(err, "failed to get recommendations")
			}

			header := color.New(color.FgCyan, color.Bold)
			header.Printf("Recommendations for artifact %s (kind=%s):\n", id, kind)
			if len(ids) == 0 {
				color.Yellow("  (none)")
				return nil
			}
			for i, rec := range ids {
				color.Green("  %2d. artifact %s", i+1, rec)
			}
			return nil
		},
	}
}
