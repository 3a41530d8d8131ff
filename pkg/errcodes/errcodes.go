package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidURL          failure.ErrorCode = "InvalidURL"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	// Normalization: a raw listing that cannot become a Deal.
	ListingMissingID    failure.ErrorCode = "ListingMissingID"
	ListingMissingTitle failure.ErrorCode = "ListingMissingTitle"
	ListingMissingPrice failure.ErrorCode = "ListingMissingPrice"
	InvalidListingPrice failure.ErrorCode = "InvalidListingPrice"

	// Affiliate link resolution.
	SessionUnavailable failure.ErrorCode = "SessionUnavailable"
	LinkNotCaptured    failure.ErrorCode = "LinkNotCaptured"

	// Dedup & quota ledger.
	StoreUnavailable failure.ErrorCode = "StoreUnavailable"
)
