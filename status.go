package casjobs

// JobStatus is the server-defined lifecycle state of a job. The integer
// code is authoritative; the label is a display form derived from it.
type JobStatus int

const (
	StatusReady     JobStatus = 0
	StatusStarted   JobStatus = 1
	StatusCanceling JobStatus = 2
	StatusCancelled JobStatus = 3
	StatusFailed    JobStatus = 4
	StatusFinished  JobStatus = 5
)

var statusLabels = [...]string{
	StatusReady:     "ready",
	StatusStarted:   "started",
	StatusCanceling: "canceling",
	StatusCancelled: "cancelled",
	StatusFailed:    "failed",
	StatusFinished:  "finished",
}

// ParseJobStatus validates a raw status code against the known set. Codes
// outside it are a malformed response, never coerced to a known state.
func ParseJobStatus(code int) (JobStatus, error) {
	if code < 0 || code >= len(statusLabels) {
		return 0, failf(KindMalformedResponse, "ParseJobStatus", "unknown status code %d", code)
	}
	return JobStatus(code), nil
}

func (s JobStatus) String() string {
	if s < 0 || int(s) >= len(statusLabels) {
		return "unknown"
	}
	return statusLabels[s]
}

// Code returns the integer form of the status.
func (s JobStatus) Code() int {
	return int(s)
}

// Cancelable reports whether a cancellation request still makes sense for
// a job in this state.
func (s JobStatus) Cancelable() bool {
	return s == StatusReady || s == StatusStarted
}

// Terminal reports whether the job has reached a final state.
func (s JobStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusFailed || s == StatusFinished
}
