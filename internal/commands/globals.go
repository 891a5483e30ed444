package commands

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/skyquery/casjobs"
)

// Globals are the flags shared by every command. The WebServices ID and
// password come from the CasJobs profile page.
type Globals struct {
	WSID     int64  `help:"CasJobs WebServices ID" env:"CASJOBS_WSID" required:""`
	Password string `help:"CasJobs password" env:"CASJOBS_PW" required:""`
	URL      string `help:"CasJobs service endpoint" env:"CASJOBS_URL" default:""`
	Retries  int    `help:"Retry failed exchanges up to N attempts" default:"0"`
	Verbose  bool   `help:"Enable debug logging" short:"v"`
}

func (g *Globals) Client() *casjobs.Client {
	opts := []casjobs.ClientOption{
		casjobs.WithLogger(log.Logger),
	}
	if g.URL != "" {
		opts = append(opts, casjobs.WithEndpoint(g.URL))
	}
	if g.Retries > 1 {
		opts = append(opts, casjobs.WithRetry(g.Retries, 2*time.Second))
	}
	return casjobs.NewClient(g.WSID, g.Password, opts...)
}
