package commands

import (
	"context"

	"github.com/rs/zerolog/log"
)

type OutputCmd struct {
	JobID int64  `arg:"" help:"Id of the extract job that produced output"`
	Path  string `help:"Directory to save the file in" default:"."`
	Name  string `help:"Save under this name instead of the service's"`
}

func (cmd *OutputCmd) Run(g *Globals) error {
	dest, err := g.Client().SaveOutput(context.Background(), cmd.JobID, cmd.Path, cmd.Name)
	if err != nil {
		return err
	}
	log.Info().Int64("job_id", cmd.JobID).Str("file", dest).Msg("Saved output")
	return nil
}
