package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skyquery/casjobs"
)

// WatchCmd polls one job's status until it reaches a terminal state.
type WatchCmd struct {
	JobID    int64         `arg:"" help:"Job id to watch"`
	Interval time.Duration `help:"Poll interval" default:"10s"`
}

func (cmd *WatchCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := g.Client()

	status, err := client.GetJobStatus(ctx, cmd.JobID)
	if err != nil {
		return err
	}
	log.Info().Int64("job_id", cmd.JobID).Stringer("status", status).Msg("Watching job")
	if status.Terminal() {
		return terminalResult(cmd.JobID, status)
	}

	ticker := time.NewTicker(cmd.Interval)
	defer ticker.Stop()

	last := status
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Watch interrupted")
			return ctx.Err()
		case <-ticker.C:
			status, err := client.GetJobStatus(ctx, cmd.JobID)
			if err != nil {
				// Keep watching through transient exchange failures.
				if casjobs.KindOf(err) == casjobs.KindTransport {
					log.Warn().Err(err).Msg("Poll failed")
					continue
				}
				return err
			}
			if status != last {
				log.Info().Int64("job_id", cmd.JobID).Stringer("status", status).Msg("Status changed")
				last = status
			}
			if status.Terminal() {
				return terminalResult(cmd.JobID, status)
			}
		}
	}
}

func terminalResult(jobID int64, status casjobs.JobStatus) error {
	if status == casjobs.StatusFinished {
		log.Info().Int64("job_id", jobID).Msg("Job finished")
		return nil
	}
	return fmt.Errorf("job %d ended with status %q", jobID, status)
}
