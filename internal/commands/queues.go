package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

type QueuesCmd struct{}

func (cmd *QueuesCmd) Run(g *Globals) error {
	queues, err := g.Client().GetQueues(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CONTEXT\tTIMEOUT")
	for _, q := range queues {
		fmt.Fprintf(w, "%s\t%d\n", q.Context, q.Timeout)
	}
	return w.Flush()
}
