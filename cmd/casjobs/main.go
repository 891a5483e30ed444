package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/skyquery/casjobs/internal/commands"
)

var cli struct {
	commands.Globals

	Jobs    commands.JobsCmd    `cmd:"" help:"List jobs matching search conditions"`
	Status  commands.StatusCmd  `cmd:"" help:"Show the status of a job"`
	Watch   commands.WatchCmd   `cmd:"" help:"Poll a job until it reaches a terminal state"`
	Cancel  commands.CancelCmd  `cmd:"" help:"Cancel a job"`
	Submit  commands.SubmitCmd  `cmd:"" help:"Submit a batch query job"`
	Quick   commands.QuickCmd   `cmd:"" help:"Run a query synchronously"`
	Extract commands.ExtractCmd `cmd:"" help:"Submit a table extraction job"`
	Output  commands.OutputCmd  `cmd:"" help:"Download the output of an extract job"`
	Upload  commands.UploadCmd  `cmd:"" help:"Upload CSV data into a MyDB table"`
	Queues  commands.QueuesCmd  `cmd:"" help:"List the available execution queues"`
	Types   commands.TypesCmd   `cmd:"" help:"List the job types the service runs"`
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx := kong.Parse(&cli,
		kong.Name("casjobs"),
		kong.Description("A command line client for the CasJobs batch query service"),
		kong.UsageOnError(),
	)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cli.Globals.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
