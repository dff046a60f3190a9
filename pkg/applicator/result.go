/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package applicator

// Status is the terminal state of one applied pattern.
type Status string

const (
	// StatusApplied indicates the pattern was written to the target.
	StatusApplied Status = "applied"

	// StatusSkipped indicates the pattern already exists in the target and
	// force was not set.
	StatusSkipped Status = "skipped"

	// StatusWouldApply indicates a dry run that would have written the
	// pattern.
	StatusWouldApply Status = "would_apply"

	// StatusFailed indicates rendering or writing the pattern failed.
	StatusFailed Status = "failed"
)

// Result records the outcome of applying one pattern.
type Result struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Status  Status `json:"status" yaml:"status"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Summary aggregates apply results by terminal status.
type Summary struct {
	Applied    int `json:"applied" yaml:"applied"`
	Skipped    int `json:"skipped" yaml:"skipped"`
	WouldApply int `json:"wouldApply" yaml:"wouldApply"`
	Failed     int `json:"failed" yaml:"failed"`
}

// Summarize counts results per status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusApplied:
			s.Applied++
		case StatusSkipped:
			s.Skipped++
		case StatusWouldApply:
			s.WouldApply++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

// HasFailures reports whether any result in the batch failed.
func HasFailures(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusFailed {
			return true
		}
	}
	return false
}
