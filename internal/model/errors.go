package model

// ErrorKind classifies a business-rule failure so callers can map it to a
// transport-level response without string matching.
type ErrorKind string

// Error kinds for API responses
const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindValidation   ErrorKind = "VALIDATION"
	KindConflict     ErrorKind = "CONFLICT"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
)

// DomainError is a business-rule failure with a machine-checkable kind.
// Storage failures are never wrapped in a DomainError; they propagate as
// ordinary errors and surface as internal errors at the edge.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(kind ErrorKind, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Message: message,
	}
}

// Common domain errors
var (
	ErrCategoryNotFound  = NewDomainError(KindNotFound, "category not found")
	ErrFoodItemNotFound  = NewDomainError(KindNotFound, "food item not found")
	ErrTableNotFound     = NewDomainError(KindValidation, "dining table does not exist")
	ErrOfferNotFound     = NewDomainError(KindNotFound, "special offer not found")
	ErrCartItemNotFound  = NewDomainError(KindNotFound, "item not found in cart")
	ErrOrderNotFound     = NewDomainError(KindNotFound, "order not found")
	ErrOptionNotFound    = NewDomainError(KindNotFound, "redemption option not found")
	ErrInvalidQuantity   = NewDomainError(KindValidation, "quantity must be a positive integer")
	ErrInvalidRating     = NewDomainError(KindValidation, "rating must be between 1 and 5")
	ErrInvalidDiscount   = NewDomainError(KindValidation, "discount percentage must be between 0 and 100")
	ErrInvalidOfferDates = NewDomainError(KindValidation, "offer end date must not be before start date")
	ErrInvalidEstimate   = NewDomainError(KindValidation, "estimated time must be a multiple of 5 between 5 and 60 minutes")
	ErrItemAlreadyInCart = NewDomainError(KindConflict, "food item is already in the cart")
	ErrCartEmpty         = NewDomainError(KindConflict, "cart is empty")
	ErrOrderAlreadyPaid  = NewDomainError(KindConflict, "order has already been paid")
	ErrInvalidTransition = NewDomainError(KindConflict, "invalid order status transition")
	ErrReviewWindowOver  = NewDomainError(KindForbidden, "orders can only be reviewed on the day they were placed")
	ErrForbidden         = NewDomainError(KindForbidden, "you do not have permission to perform this action")
	ErrUnauthorized      = NewDomainError(KindUnauthorized, "authentication required")
)
