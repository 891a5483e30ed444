package commands

import (
	"context"
	"fmt"

	"github.com/skyquery/casjobs"
)

type ExtractCmd struct {
	Table string `arg:"" help:"Name of the table to extract"`
	Type  string `help:"Output format" enum:"CSV,DataSet,FITS,QUERY,VOTable" default:"CSV"`
}

func (cmd *ExtractCmd) Run(g *Globals) error {
	jobID, err := g.Client().SubmitExtractJob(context.Background(), casjobs.SubmitExtractJobRequest{
		TableName: cmd.Table,
		Type:      casjobs.OutputType(cmd.Type),
	})
	if err != nil {
		return err
	}
	fmt.Println(jobID)
	return nil
}
