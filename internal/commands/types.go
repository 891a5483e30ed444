package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

type TypesCmd struct{}

func (cmd *TypesCmd) Run(g *Globals) error {
	types, err := g.Client().GetJobTypes(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tNAME\tDESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(w, "%d\t%s\t%s\n", t.Type, t.Name, t.Description)
	}
	return w.Flush()
}
