package casjobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
)

// OutputLocation returns the artifact URL recorded for an extract job. A
// job without one (not an extract job, or output not ready yet) is an
// unmet precondition, not a transport problem.
func (c *Client) OutputLocation(ctx context.Context, jobID int64) (string, error) {
	job, err := c.GetJob(ctx, jobID)
	if err != nil {
		return "", err
	}
	if job.OutputLoc == nil || *job.OutputLoc == "" {
		return "", failf(KindPreconditionNotMet, "OutputLocation",
			"no output reported for job %d", jobID)
	}
	return *job.OutputLoc, nil
}

// DownloadOutput streams an extract job's artifact into w and returns the
// file name the service gave it.
func (c *Client) DownloadOutput(ctx context.Context, jobID int64, w io.Writer) (string, error) {
	loc, err := c.OutputLocation(ctx, jobID)
	if err != nil {
		return "", err
	}
	if err := c.fetchOutput(ctx, loc, w); err != nil {
		return "", err
	}
	return outputFileName(loc), nil
}

// SaveOutput downloads an extract job's artifact into dir, named after the
// artifact unless name overrides it, and returns the path written.
func (c *Client) SaveOutput(ctx context.Context, jobID int64, dir, name string) (string, error) {
	loc, err := c.OutputLocation(ctx, jobID)
	if err != nil {
		return "", err
	}

	if name == "" {
		name = outputFileName(loc)
	}
	if dir == "" {
		dir = "."
	}
	dest := filepath.Join(dir, name)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	defer f.Close()

	if err := c.fetchOutput(ctx, loc, f); err != nil {
		os.Remove(dest)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, nil
}

func (c *Client) fetchOutput(ctx context.Context, loc string, w io.Writer) error {
	const op = "DownloadOutput"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loc, nil)
	if err != nil {
		return failf(KindPreconditionNotMet, op, "bad output location %q: %v", loc, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return failf(KindTransport, op, "unexpected status %d fetching %s", resp.StatusCode, loc)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	c.logger.Debug().Str("location", loc).Int64("bytes", n).Msg("downloaded output")
	return nil
}

func outputFileName(loc string) string {
	u, err := url.Parse(loc)
	if err != nil {
		return path.Base(loc)
	}
	return path.Base(u.Path)
}
