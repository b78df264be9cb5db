package amadeus

import (
	"encoding/json"
	"fmt"
)

// APIError is an error the provider itself reported (4xx/5xx with a parsed
// error document). Transport failures are wrapped plain errors, never APIError.
type APIError struct {
	Status int    // HTTP status of the response
	Code   int    // provider error code, 0 when absent
	Title  string
	Detail string
	Body   []byte // raw error body for diagnostics
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("amadeus: %d %s: %s", e.Status, e.Title, e.Detail)
	}
	return fmt.Sprintf("amadeus: %d %s", e.Status, e.Title)
}

type errorDoc struct {
	Errors []struct {
		Status int    `json:"status"`
		Code   int    `json:"code"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Title:  "upstream error",
		Body:   body,
	}

	var doc errorDoc
	if err := json.Unmarshal(body, &doc); err == nil && len(doc.Errors) > 0 {
		first := doc.Errors[0]
		apiErr.Code = first.Code
		if first.Title != "" {
			apiErr.Title = first.Title
		}
		apiErr.Detail = first.Detail
	}
	return apiErr
}
