package casjobs

import (
	"time"

	"github.com/skyquery/casjobs/soap"
)

// The normalizers below convert raw response trees into the canonical
// record types, masking the service's shape inconsistencies: collections
// may be absent when empty, a lone record is not distinguishable from a
// one-element sequence, and field presence varies per record. They are
// pure functions and perform no I/O.

// JobsFromResult converts a GetJobsResult tree into a job list. A nil or
// childless result means zero matches and yields an empty list, never an
// error; "no jobs" and "failed call" are distinct outcomes.
func JobsFromResult(result *soap.Node) ([]Job, error) {
	records := result.All("CJJob")
	jobs := make([]Job, 0, len(records))
	for _, rec := range records {
		job, err := jobFromRecord(rec)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func jobFromRecord(rec *soap.Node) (Job, error) {
	const op = "JobsFromResult"
	var job Job

	id, err := requiredInt(rec, "JobID", op)
	if err != nil {
		return Job{}, err
	}
	job.JobID = id

	code, err := requiredInt(rec, "Status", op)
	if err != nil {
		return Job{}, err
	}
	status, err := ParseJobStatus(int(code))
	if err != nil {
		return Job{}, err
	}
	job.Status = status

	job.WebServicesID = optionalInt(rec, "WebServicesID")
	job.Rows = optionalInt(rec, "Rows")
	job.Queue = int(optionalInt(rec, "Queue"))

	job.TaskName, _ = rec.ChildText("TaskName")
	job.Query, _ = rec.ChildText("Query")
	job.Context, _ = rec.ChildText("Context")
	job.Type, _ = rec.ChildText("Type")

	job.Error = optionalString(rec, "Error")
	job.OutputLoc = optionalString(rec, "OutputLoc")

	for _, ts := range []struct {
		name string
		dst  **time.Time
	}{
		{"TimeSubmit", &job.TimeSubmit},
		{"TimeStart", &job.TimeStart},
		{"TimeEnd", &job.TimeEnd},
	} {
		text, ok := rec.ChildText(ts.name)
		if !ok || text == "" {
			continue
		}
		t, err := parseServiceTime(text)
		if err != nil {
			return Job{}, failf(KindMalformedResponse, op, "job %d: bad %s %q", job.JobID, ts.name, text)
		}
		*ts.dst = &t
	}

	return job, nil
}

// QueuesFromResult converts a GetQueuesResult tree into a queue list. An
// absent queue collection normalizes to an empty list.
func QueuesFromResult(result *soap.Node) ([]Queue, error) {
	const op = "QueuesFromResult"
	records := result.All("CJQueue")
	queues := make([]Queue, 0, len(records))
	for _, rec := range records {
		ctx, ok := rec.ChildText("Context")
		if !ok {
			return nil, failf(KindMalformedResponse, op, "queue record has no Context")
		}
		timeout, err := requiredInt(rec, "Timeout", op)
		if err != nil {
			return nil, err
		}
		queues = append(queues, Queue{Context: ctx, Timeout: timeout})
	}
	return queues, nil
}

// JobTypesFromResult converts a GetJobTypesResult tree into a type list.
func JobTypesFromResult(result *soap.Node) ([]JobType, error) {
	records := result.All("CJType")
	types := make([]JobType, 0, len(records))
	for _, rec := range records {
		var jt JobType
		jt.Type = optionalInt(rec, "Type")
		jt.Name, _ = rec.ChildText("Name")
		jt.Description, _ = rec.ChildText("Description")
		types = append(types, jt)
	}
	return types, nil
}

// StatusFromResult unwraps and validates a GetJobStatusResult value.
func StatusFromResult(result *soap.Node) (JobStatus, error) {
	const op = "StatusFromResult"
	if result == nil {
		return 0, failf(KindMalformedResponse, op, "response has no status result")
	}
	code, err := result.Int64()
	if err != nil {
		return 0, failf(KindMalformedResponse, op, "status result %q is not an integer", result.Text)
	}
	return ParseJobStatus(int(code))
}

// SubmitIDFromResult unwraps the job id returned by a submit operation. A
// missing or garbled id is an error, never id 0.
func SubmitIDFromResult(result *soap.Node) (int64, error) {
	const op = "SubmitIDFromResult"
	if result == nil {
		return 0, failf(KindMalformedResponse, op, "response has no submit result")
	}
	id, err := result.Int64()
	if err != nil {
		return 0, failf(KindMalformedResponse, op, "submit result %q is not a job id", result.Text)
	}
	return id, nil
}

func requiredInt(rec *soap.Node, name, op string) (int64, error) {
	c := rec.Child(name)
	if c == nil {
		return 0, failf(KindMalformedResponse, op, "record has no %s field", name)
	}
	v, err := c.Int64()
	if err != nil {
		return 0, failf(KindMalformedResponse, op, "%s value %q is not an integer", name, c.Text)
	}
	return v, nil
}

func optionalInt(rec *soap.Node, name string) int64 {
	c := rec.Child(name)
	if c == nil {
		return 0
	}
	v, err := c.Int64()
	if err != nil {
		return 0
	}
	return v
}

func optionalString(rec *soap.Node, name string) *string {
	text, ok := rec.ChildText(name)
	if !ok {
		return nil
	}
	return &text
}

// The service reports .NET dateTime values; zone designators and
// sub-second precision vary between deployments.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"1/2/2006 3:04:05 PM",
}

func parseServiceTime(text string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
