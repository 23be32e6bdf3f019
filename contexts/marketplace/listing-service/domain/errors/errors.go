package errors

import "errors"

// Not found
var ErrListingNotFound = errors.New("listing not found")

// Invalid state
var ErrComplianceNotDraft = errors.New("listing compliance must be in draft status to submit")

// Validation
var (
	ErrInvalidListingInput = errors.New("invalid listing input")
	ErrInvalidReviewInput  = errors.New("invalid review decision")
	ErrInvalidDocumentType = errors.New("unknown compliance document type")
	ErrInvalidListFilter   = errors.New("invalid listing filter")
)
