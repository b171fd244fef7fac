package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/opencity-lab/musette/pkg/cli/config"
	"github.com/opencity-lab/musette/pkg/domain/types"
	"github.com/opencity-lab/musette/pkg/usecase"
	"github.com/opencity-lab/musette/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// cmdRebuild runs the similarity builder synchronously for one artifact.
// Meant for operations: repairing the edge set after manual data fixes or a
// lost async task.
func cmdRebuild() *cli.Command {
	var repoCfg config.Repository
	var recommenderCfg config.Recommender

	flags := append(repoCfg.Flags(), recommenderCfg.Flags()...)

	return &cli.Command{
		Name:      "rebuild",
		Usage:     "Rebuild similarity edges for an artifact",
		ArgsUsage: "<artifact-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one artifact ID argument is required")
			}
			id, err := types.ParseArtifactID(c.Args().First())
			if err != nil {
				return err
			}

			recommendCfg, err := recommenderCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load recommender configuration")
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

			uc := usecase.New(repo, usecase.WithConfig(recommendCfg))
			if err := uc.Similarity.Rebuild(ctx, id); err != nil {
				return goerr.Wrap(err, "failed to rebuild similarities", goerr.V("id", id))
			}

			logging.Default().Info("Similarity edges rebuilt", "id", id)
			return nil
		},
	}
}
