package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

type UploadCmd struct {
	Table  string `arg:"" help:"Table to load the data into"`
	File   string `arg:"" help:"CSV file to upload" type:"existingfile"`
	Exists bool   `help:"Load into an existing table instead of creating one"`
}

func (cmd *UploadCmd) Run(g *Globals) error {
	f, err := os.Open(cmd.File)
	if err != nil {
		return fmt.Errorf("opening %s: %w", cmd.File, err)
	}
	defer f.Close()

	if err := g.Client().UploadData(context.Background(), cmd.Table, f, cmd.Exists); err != nil {
		return err
	}
	log.Info().Str("table", cmd.Table).Str("file", cmd.File).Msg("Uploaded data")
	return nil
}
