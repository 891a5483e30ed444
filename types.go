package casjobs

import "time"

// Job is one unit of remote work as reported by the listing operation.
// Optional fields are pointers: nil means the service did not report the
// field at all, which is not the same as reporting it empty.
type Job struct {
	JobID         int64
	WebServicesID int64
	Rows          int64
	Status        JobStatus
	Queue         int
	TaskName      string
	Query         string
	Context       string
	Type          string
	TimeSubmit    *time.Time
	TimeStart     *time.Time
	TimeEnd       *time.Time
	Error         *string

	// OutputLoc is the artifact URL of a finished extract job.
	OutputLoc *string
}

// Queue is one execution tier: the database context it runs against and
// its timeout bound in minutes. Submit estimates are bucketed into the
// nearest queue's bracket server-side.
type Queue struct {
	Context string
	Timeout int64
}

// JobType describes one kind of job the service can run.
type JobType struct {
	Type        int64
	Name        string
	Description string
}

// OutputType selects the artifact format of an extract job.
type OutputType string

const (
	OutputCSV     OutputType = "CSV"
	OutputDataSet OutputType = "DataSet"
	OutputFITS    OutputType = "FITS"
	OutputQuery   OutputType = "QUERY"
	OutputVOTable OutputType = "VOTable"
)

// SubmitJobRequest describes a batch query submission.
type SubmitJobRequest struct {
	// Query is the SQL to run.
	Query string

	// Context is the database to run against. Defaults to "MyDB".
	Context string

	// TaskName labels the job in listings. Defaults to "gojob".
	TaskName string

	// Estimate is the expected runtime in minutes; the service picks the
	// queue whose timeout bracket is nearest. Defaults to 1.
	Estimate int
}

// SubmitExtractJobRequest describes a table extraction submission.
type SubmitExtractJobRequest struct {
	TableName string
	Type      OutputType
}

// QuickJobRequest describes a synchronous quick query.
type QuickJobRequest struct {
	Query    string
	Context  string // defaults to "MyDB"
	TaskName string // defaults to "goquickjob"
	IsSystem bool
}
