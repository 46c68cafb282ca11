package handlers

// Stable error codes carried in ErrorResponse.Code. Clients branch on these,
// never on messages.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeUnavailable      = "unavailable"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	ErrCodeSessionNotFound  = "session_not_found"
	ErrCodeEmptyName        = "empty_name"
	ErrCodeInvalidAnswer    = "invalid_answer"
	ErrCodeIncompleteSurvey = "incomplete_survey"
	ErrCodeNoResult         = "no_result"
	ErrCodeReplyPending     = "reply_pending"
	ErrCodeLedgerFailed     = "ledger_failed"
	ErrCodeListFailed       = "list_failed"
)
