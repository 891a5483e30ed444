package commands

import (
	"context"
	"fmt"

	"github.com/skyquery/casjobs"
)

type SubmitCmd struct {
	Query    string `arg:"" help:"SQL query to run"`
	DB       string `help:"Database context to query" default:"MyDB"`
	TaskName string `help:"Name identifying the job" default:"gojob"`
	Estimate int    `help:"Estimated runtime in minutes" default:"1"`
}

func (cmd *SubmitCmd) Run(g *Globals) error {
	jobID, err := g.Client().SubmitJob(context.Background(), casjobs.SubmitJobRequest{
		Query:    cmd.Query,
		Context:  cmd.DB,
		TaskName: cmd.TaskName,
		Estimate: cmd.Estimate,
	})
	if err != nil {
		return err
	}
	fmt.Println(jobID)
	return nil
}
