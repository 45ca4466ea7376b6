// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. Service errors reach clients through failErr, which only
// looks at the error kind:
//
//	services.ErrInvalidID  -> 400 invalid_id
//	services.ErrNotFound   -> 404 not_found
//	services.ErrConflict   -> 409 conflict
//	services.ErrValidation -> 422 validation_failed
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "conflict: already checked in today"
//	}
package handlers

const (
	ErrCodeBadRequest        = "bad_request"
	ErrCodeInvalidID         = "invalid_id"
	ErrCodeNotFound          = "not_found"
	ErrCodeConflict          = "conflict"
	ErrCodeValidation        = "validation_failed"
	ErrCodeRateLimited       = "too_many_requests"
	ErrCodeInternal          = "internal_error"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
	ErrCodeBadIdempotencyKey = "bad_idempotency_key"
)
