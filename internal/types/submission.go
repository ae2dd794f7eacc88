package types

// SubmitResult is the outcome of submitting one input to the batch scheduler.
// JobID is "UNKNOWN" when the scheduler reply carried no recognizable job ID.
type SubmitResult struct {
	Input string `json:"input"`
	JobID string `json:"job_id,omitempty"`
	Err   error  `json:"-"`
}

// OK reports whether the submission command succeeded.
func (r SubmitResult) OK() bool {
	return r.Err == nil
}
