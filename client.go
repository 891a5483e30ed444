// Package casjobs is a client for the CasJobs astronomical batch query
// service. It submits SQL jobs, polls their status, lists and cancels
// them, uploads tabular data and downloads extract job output.
package casjobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyquery/casjobs/soap"
)

const (
	defaultContext       = "MyDB"
	defaultTaskName      = "gojob"
	defaultQuickTaskName = "goquickjob"
)

// Client talks to one CasJobs endpoint on behalf of one account. It holds
// no mutable state and is safe for concurrent use; credentials are passed
// on every wire call, never cached server-side.
type Client struct {
	wsID       string
	password   string
	transport  *soap.Transport
	httpClient *http.Client
	logger     zerolog.Logger
}

type clientOptions struct {
	endpoint      string
	httpClient    *http.Client
	logger        zerolog.Logger
	retryAttempts int
	retryInterval time.Duration
}

type ClientOption func(*clientOptions)

// WithEndpoint points the client at a non-default service URL.
func WithEndpoint(url string) ClientOption {
	return func(o *clientOptions) { o.endpoint = url }
}

// WithHTTPClient replaces the HTTP client used for SOAP calls and output
// downloads.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithLogger attaches a logger; wire traffic is logged at debug level.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(o *clientOptions) { o.logger = l }
}

// WithRetry retries failed exchanges at the transport layer. Off by
// default; the client itself never retries.
func WithRetry(maxAttempts int, interval time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.retryAttempts = maxAttempts
		o.retryInterval = interval
	}
}

// NewClient builds a client for the account identified by wsID (the
// numeric WebServices ID from the CasJobs profile page) and its password.
func NewClient(wsID int64, password string, opts ...ClientOption) *Client {
	o := clientOptions{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	topts := []soap.Option{
		soap.WithHTTPClient(o.httpClient),
		soap.WithLogger(o.logger),
	}
	if o.retryAttempts > 0 {
		topts = append(topts, soap.WithRetry(o.retryAttempts, o.retryInterval))
	}

	return &Client{
		wsID:       strconv.FormatInt(wsID, 10),
		password:   password,
		transport:  soap.New(o.endpoint, topts...),
		httpClient: o.httpClient,
		logger:     o.logger,
	}
}

// GetJobs lists the jobs matching the filter. System jobs (jobs not owned
// by the account) are only included when includeSystem is set. An empty
// result is a successful empty list.
func (c *Client) GetJobs(ctx context.Context, filter Filter, includeSystem bool) ([]Job, error) {
	conditions, err := filter.Compile()
	if err != nil {
		return nil, err
	}

	resp, err := c.transport.Call(ctx, "GetJobs", []soap.Param{
		{Name: "owner_wsid", Value: c.wsID},
		{Name: "owner_pw", Value: c.password},
		{Name: "conditions", Value: conditions},
		{Name: "includeSystem", Value: strconv.FormatBool(includeSystem)},
	})
	if err != nil {
		return nil, wireErr("GetJobs", err)
	}
	return JobsFromResult(resp.Child("GetJobsResult"))
}

// GetJob looks up exactly one job by id. Zero matches, or more than one,
// are reported as unmet preconditions.
func (c *Client) GetJob(ctx context.Context, jobID int64) (Job, error) {
	jobs, err := c.GetJobs(ctx, Filter{JobID: strconv.FormatInt(jobID, 10)}, false)
	if err != nil {
		return Job{}, err
	}
	switch len(jobs) {
	case 0:
		return Job{}, failf(KindPreconditionNotMet, "GetJob", "no job found with id %d", jobID)
	case 1:
		return jobs[0], nil
	default:
		return Job{}, failf(KindPreconditionNotMet, "GetJob", "%d jobs match id %d", len(jobs), jobID)
	}
}

// GetJobStatus returns the current status of a job. The job's existence
// is confirmed through the listing operation first; the bare status call
// is not trusted as an existence check.
func (c *Client) GetJobStatus(ctx context.Context, jobID int64) (JobStatus, error) {
	if _, err := c.GetJob(ctx, jobID); err != nil {
		return 0, err
	}

	// The wire names really are cased differently from GetJobs.
	resp, err := c.transport.Call(ctx, "GetJobStatus", []soap.Param{
		{Name: "wsId", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "jobId", Value: strconv.FormatInt(jobID, 10)},
	})
	if err != nil {
		return 0, wireErr("GetJobStatus", err)
	}
	return StatusFromResult(resp.Child("GetJobStatusResult"))
}

// CancelJob requests cancellation of a job. Jobs already canceling or in
// a terminal state are refused locally without contacting the service.
func (c *Client) CancelJob(ctx context.Context, jobID int64) error {
	job, err := c.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.Status.Cancelable() {
		return failf(KindPreconditionNotMet, "CancelJob",
			"job %d has status %q; will not cancel", jobID, job.Status)
	}

	_, err = c.transport.Call(ctx, "CancelJob", []soap.Param{
		{Name: "wsId", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "jobId", Value: strconv.FormatInt(jobID, 10)},
	})
	if err != nil {
		return wireErr("CancelJob", err)
	}
	return nil
}

// SubmitJob submits a batch query and returns the new job's id.
func (c *Client) SubmitJob(ctx context.Context, req SubmitJobRequest) (int64, error) {
	if req.Context == "" {
		req.Context = defaultContext
	}
	if req.TaskName == "" {
		req.TaskName = defaultTaskName
	}
	if req.Estimate <= 0 {
		req.Estimate = 1
	}

	resp, err := c.transport.Call(ctx, "SubmitJob", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "qry", Value: req.Query},
		{Name: "context", Value: req.Context},
		{Name: "taskname", Value: req.TaskName},
		{Name: "estimate", Value: strconv.Itoa(req.Estimate)},
	})
	if err != nil {
		return 0, wireErr("SubmitJob", err)
	}
	return SubmitIDFromResult(resp.Child("SubmitJobResult"))
}

// SubmitExtractJob submits a table extraction and returns the new job's
// id. The artifact URL appears as the job's OutputLoc once it finishes.
func (c *Client) SubmitExtractJob(ctx context.Context, req SubmitExtractJobRequest) (int64, error) {
	if req.Type == "" {
		req.Type = OutputCSV
	}

	resp, err := c.transport.Call(ctx, "SubmitExtractJob", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "tableName", Value: req.TableName},
		{Name: "type", Value: string(req.Type)},
	})
	if err != nil {
		return 0, wireErr("SubmitExtractJob", err)
	}
	return SubmitIDFromResult(resp.Child("SubmitExtractJobResult"))
}

// ExecuteQuickJob runs a query synchronously and returns the result rows
// as lines of text.
func (c *Client) ExecuteQuickJob(ctx context.Context, req QuickJobRequest) ([]string, error) {
	if req.Context == "" {
		req.Context = defaultContext
	}
	if req.TaskName == "" {
		req.TaskName = defaultQuickTaskName
	}

	resp, err := c.transport.Call(ctx, "ExecuteQuickJob", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "qry", Value: req.Query},
		{Name: "context", Value: req.Context},
		{Name: "taskname", Value: req.TaskName},
		{Name: "isSystem", Value: strconv.FormatBool(req.IsSystem)},
	})
	if err != nil {
		return nil, wireErr("ExecuteQuickJob", err)
	}

	result := resp.Child("ExecuteQuickJobResult")
	if result == nil {
		return nil, failf(KindMalformedResponse, "ExecuteQuickJob", "response has no result")
	}
	return strings.Split(result.Text, "\n"), nil
}

// GetQueues lists the execution queues the service offers. The timeout of
// each queue is the bracket a submit estimate is matched against.
func (c *Client) GetQueues(ctx context.Context) ([]Queue, error) {
	resp, err := c.transport.Call(ctx, "GetQueues", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
	})
	if err != nil {
		return nil, wireErr("GetQueues", err)
	}
	return QueuesFromResult(resp.Child("GetQueuesResult"))
}

// GetJobTypes lists the job types the service can run.
func (c *Client) GetJobTypes(ctx context.Context) ([]JobType, error) {
	resp, err := c.transport.Call(ctx, "GetJobTypes", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
	})
	if err != nil {
		return nil, wireErr("GetJobTypes", err)
	}
	return JobTypesFromResult(resp.Child("GetJobTypesResult"))
}

// UploadData loads ASCII CSV data into a table in the account's MyDB. With
// tableExists the data is appended to an existing table using its schema;
// otherwise a new table is created with a guessed schema.
func (c *Client) UploadData(ctx context.Context, tableName string, data io.Reader, tableExists bool) error {
	raw, err := io.ReadAll(data)
	if err != nil {
		return fmt.Errorf("reading upload data: %w", err)
	}

	_, err = c.transport.Call(ctx, "UploadData", []soap.Param{
		{Name: "wsid", Value: c.wsID},
		{Name: "pw", Value: c.password},
		{Name: "tableName", Value: tableName},
		{Name: "data", Value: string(raw)},
		{Name: "tableExists", Value: strconv.FormatBool(tableExists)},
	})
	if err != nil {
		return wireErr("UploadData", err)
	}
	return nil
}

// Endpoint returns the service URL the client talks to.
func (c *Client) Endpoint() string {
	return c.transport.Endpoint()
}
