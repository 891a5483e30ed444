package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/skyquery/casjobs"
)

// JobsCmd lists jobs matching search conditions. Each condition flag takes
// the service's mini-grammar: VALUE, V1|V2, "A," (at least), ",B" (at
// most) or "A,B" (inclusive range).
type JobsCmd struct {
	JobID      string `help:"Condition on job id"`
	TimeSubmit string `help:"Condition on submit time"`
	TimeStart  string `help:"Condition on start time"`
	TimeEnd    string `help:"Condition on end time"`
	Status     string `help:"Condition on status code (0=ready 1=started 2=canceling 3=cancelled 4=failed 5=finished)"`
	Queue      string `help:"Condition on queue number"`
	TaskName   string `help:"Condition on task name"`
	Error      string `help:"Condition on error message"`
	Query      string `help:"Condition on query text"`
	Context    string `help:"Condition on database context"`
	Type       string `help:"Condition on job type"`
	Owner      string `help:"Condition on owner wsid (admin only)"`

	IncludeSystem bool `help:"Include system jobs"`
}

func (cmd *JobsCmd) Run(g *Globals) error {
	filter := casjobs.Filter{
		JobID:         cmd.JobID,
		TimeSubmit:    cmd.TimeSubmit,
		TimeStart:     cmd.TimeStart,
		TimeEnd:       cmd.TimeEnd,
		Status:        cmd.Status,
		Queue:         cmd.Queue,
		TaskName:      cmd.TaskName,
		Error:         cmd.Error,
		Query:         cmd.Query,
		Context:       cmd.Context,
		Type:          cmd.Type,
		WebServicesID: cmd.Owner,
	}

	jobs, err := g.Client().GetJobs(context.Background(), filter, cmd.IncludeSystem)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "JOBID\tSTATUS\tCONTEXT\tTASKNAME\tSUBMITTED\tROWS")
	for _, job := range jobs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			job.JobID, job.Status, job.Context, job.TaskName,
			formatTime(job.TimeSubmit), job.Rows)
	}
	return w.Flush()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.RFC3339)
}
