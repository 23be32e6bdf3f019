package entities

import "time"

type ComplianceStatus string

const (
	ComplianceStatusDraft            ComplianceStatus = "draft"
	ComplianceStatusPendingDocuments ComplianceStatus = "pending_documents"
	ComplianceStatusUnderReview      ComplianceStatus = "under_review"
	ComplianceStatusApproved         ComplianceStatus = "approved"
	ComplianceStatusRejected         ComplianceStatus = "rejected"
	ComplianceStatusSuspended        ComplianceStatus = "suspended"
)

// ReviewDecision is the subset of statuses a compliance reviewer may set.
type ReviewDecision ComplianceStatus

const (
	ReviewDecisionApprove ReviewDecision = ReviewDecision(ComplianceStatusApproved)
	ReviewDecisionReject  ReviewDecision = ReviewDecision(ComplianceStatusRejected)
	ReviewDecisionSuspend ReviewDecision = ReviewDecision(ComplianceStatusSuspended)
)

func (d ReviewDecision) Valid() bool {
	switch d {
	case ReviewDecisionApprove, ReviewDecisionReject, ReviewDecisionSuspend:
		return true
	default:
		return false
	}
}

// Compliance is the regulatory review record attached 1:1 to a listing.
// It gates the listing's public visibility and is created at Draft together
// with the listing.
type Compliance struct {
	ListingID string
	TenantID  string
	Status    ComplianceStatus

	SubmittedAt   *time.Time
	ReviewedAt    *time.Time
	ReviewerID    string
	ReviewNotes   string
	LastUpdatedAt time.Time
}
