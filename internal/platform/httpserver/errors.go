package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	auctionerrors "stockyard/contexts/marketplace/auction-service/domain/errors"
	listingerrors "stockyard/contexts/marketplace/listing-service/domain/errors"
	listinghttp "stockyard/contexts/marketplace/listing-service/transport/http"
	"stockyard/internal/shared/tenancy"
)

// writeDomainError translates domain sentinels into HTTP statuses. The
// unauthorized family maps to 403 for authenticated callers and 401 for
// anonymous ones; everything unrecognized is a 500.
func writeDomainError(w http.ResponseWriter, authenticated bool, err error) {
	switch {
	case errors.Is(err, tenancy.ErrUnauthorized):
		status := http.StatusForbidden
		code := "forbidden"
		if !authenticated {
			status = http.StatusUnauthorized
			code = "unauthenticated"
		}
		writeError(w, status, code, err.Error())

	case errors.Is(err, listingerrors.ErrListingNotFound),
		errors.Is(err, auctionerrors.ErrListingNotFound),
		errors.Is(err, auctionerrors.ErrAuctionNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, listingerrors.ErrComplianceNotDraft),
		errors.Is(err, auctionerrors.ErrAuctionClosed),
		errors.Is(err, auctionerrors.ErrAuctionAlreadyClosed),
		errors.Is(err, auctionerrors.ErrAuctionAlreadyExists),
		errors.Is(err, auctionerrors.ErrListingNotActive),
		errors.Is(err, auctionerrors.ErrListingNotApproved),
		errors.Is(err, auctionerrors.ErrBuyNowListing),
		errors.Is(err, auctionerrors.ErrBidsNotAvailable):
		writeError(w, http.StatusConflict, "invalid_state", err.Error())

	case errors.Is(err, listingerrors.ErrInvalidListingInput),
		errors.Is(err, listingerrors.ErrInvalidReviewInput),
		errors.Is(err, listingerrors.ErrInvalidDocumentType),
		errors.Is(err, listingerrors.ErrInvalidListFilter),
		errors.Is(err, auctionerrors.ErrInvalidAuctionInput),
		errors.Is(err, auctionerrors.ErrInvalidBidAmount),
		errors.Is(err, auctionerrors.ErrBidIncrementTooLow),
		errors.Is(err, auctionerrors.ErrInvalidListFilter):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, listinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
