// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable: clients branch on them, while
// the accompanying message is for humans. Generic codes mirror HTTP status
// semantics; domain codes name failures a status alone cannot convey.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "unknown_category",
//	  "message": "unknown category"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTooLarge         = "payload_too_large"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeBusy            = "busy"
	ErrCodeTooLong         = "question_too_long"
	ErrCodeUnknownCategory = "unknown_category"
	ErrCodeInvalidSettings = "invalid_settings"
	ErrCodeConfirmRequired = "confirmation_required"
	ErrCodeNoFiles         = "no_files"
	ErrCodeAnswerFailed    = "answer_failed"
	ErrCodeClearFailed     = "clear_failed"
	ErrCodeSettingsFailed  = "settings_failed"
)
