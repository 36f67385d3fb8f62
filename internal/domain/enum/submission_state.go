package enum

import "encoding/json"

// SubmissionState is the phase of the invoice submission workflow
type SubmissionState int

const (
	SubmissionIdle       SubmissionState = 0
	SubmissionValidating SubmissionState = 1
	SubmissionSubmitting SubmissionState = 2
	SubmissionSuccess    SubmissionState = 3
	SubmissionFailed     SubmissionState = 4
)

func (s SubmissionState) String() string {
	names := [...]string{"Idle", "Validating", "Submitting", "Success", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

func (s SubmissionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
