package commands

import (
	"context"

	"github.com/rs/zerolog/log"
)

type CancelCmd struct {
	JobID int64 `arg:"" help:"Job id to cancel"`
}

func (cmd *CancelCmd) Run(g *Globals) error {
	if err := g.Client().CancelJob(context.Background(), cmd.JobID); err != nil {
		return err
	}
	log.Info().Int64("job_id", cmd.JobID).Msg("Requested cancellation")
	return nil
}
