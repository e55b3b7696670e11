package domain

// StepFailure records one hostname whose mutation did not go through.
type StepFailure struct {
	Hostname string
	Err      error
}

// ApplyResult summarizes one apply pass over a plan.
type ApplyResult struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    []StepFailure
}

// OK reports whether every planned operation succeeded.
func (r *ApplyResult) OK() bool {
	return len(r.Failed) == 0
}
