package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/skyquery/casjobs"
)

type QuickCmd struct {
	Query    string `arg:"" help:"SQL query to run synchronously"`
	DB       string `help:"Database context to query" default:"MyDB"`
	TaskName string `help:"Name identifying the job" default:"goquickjob"`
	Save     string `help:"Write the result to this CSV file instead of stdout"`
	System   bool   `help:"Run as a system job"`
}

func (cmd *QuickCmd) Run(g *Globals) error {
	lines, err := g.Client().ExecuteQuickJob(context.Background(), casjobs.QuickJobRequest{
		Query:    cmd.Query,
		Context:  cmd.DB,
		TaskName: cmd.TaskName,
		IsSystem: cmd.System,
	})
	if err != nil {
		return err
	}

	if cmd.Save == "" {
		for _, line := range lines {
			fmt.Println(line)
		}
		return nil
	}

	name := cmd.Save
	if !strings.HasSuffix(name, ".csv") {
		name += ".csv"
	}
	if err := os.WriteFile(name, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	log.Info().Str("file", name).Int("lines", len(lines)).Msg("Saved result")
	return nil
}
