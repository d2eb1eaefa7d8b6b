package build

import "time"

// StepResult captures the outcome of a single build step.
type StepResult struct {
	Name     string
	Status   string // "success", "failed"
	Image    string // produced image path, set on success
	ExitCode int
	Duration time.Duration
	Error    error // non-zero exit of the build tool
}

// Succeeded reports whether the build tool exited cleanly.
func (r *StepResult) Succeeded() bool {
	return r.Status == "success"
}
