package models

import "fmt"

// LambdaEvent is the input event for Lambda invocation.
type LambdaEvent struct {
	Source     string `json:"source,omitempty"`
	DetailType string `json:"detail-type,omitempty"`
	RangeDays  *int   `json:"range_days,omitempty"`
}

// EffectiveRangeDays returns the report window length in days.
func (e *LambdaEvent) EffectiveRangeDays(defaultValue int) int {
	if e != nil && e.RangeDays != nil && *e.RangeDays > 0 {
		return *e.RangeDays
	}
	return defaultValue
}

// LambdaResponse is the output from Lambda invocation.
type LambdaResponse struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Report     *ActivityReport `json:"report,omitempty"`
}

// NewSuccessResponse creates a success response.
func NewSuccessResponse(report *ActivityReport) *LambdaResponse {
	msg := fmt.Sprintf("Snapshot completed: %d members", len(report.Members))
	if !report.IsComplete() {
		msg += fmt.Sprintf(" (%d source errors)", len(report.SourceErrors))
	}
	return &LambdaResponse{
		StatusCode: 200,
		Message:    msg,
		Report:     report,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(err error) *LambdaResponse {
	return &LambdaResponse{
		StatusCode: 500,
		Message:    err.Error(),
	}
}
