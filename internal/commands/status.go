package commands

import (
	"context"
	"fmt"
)

type StatusCmd struct {
	JobID int64 `arg:"" help:"Job id to look up"`
	Code  bool  `help:"Print the numeric status code instead of the label"`
}

func (cmd *StatusCmd) Run(g *Globals) error {
	status, err := g.Client().GetJobStatus(context.Background(), cmd.JobID)
	if err != nil {
		return err
	}
	if cmd.Code {
		fmt.Println(status.Code())
	} else {
		fmt.Println(status)
	}
	return nil
}
