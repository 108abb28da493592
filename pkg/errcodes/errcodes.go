package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Deals and pools
	DealNotFound       failure.ErrorCode = "DealNotFound"       // id is well formed but not in the catalog
	InvalidDealID      failure.ErrorCode = "InvalidDealID"      // empty or malformed id
	InvalidQuantity    failure.ErrorCode = "InvalidQuantity"    // not a number or not > 0
	InvalidContact     failure.ErrorCode = "InvalidContact"     // missing destination number
	CatalogUnavailable failure.ErrorCode = "CatalogUnavailable" // sheet or storage could not be read
	InvalidSheet       failure.ErrorCode = "InvalidSheet"       // sheet export lacks required columns
)
