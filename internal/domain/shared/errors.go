package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Stock and sales errors
var (
	ErrProductNotFound     = NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
	ErrUnitNotFound        = NewDomainError("UNIT_NOT_FOUND", "Unit of measure not found")
	ErrProductUnitNotFound = NewDomainError("PRODUCT_UNIT_NOT_FOUND", "Product unit not found")
	ErrDuplicateUnit       = NewDomainError("DUPLICATE_UNIT", "Product already has a variant for this unit")
	ErrInvalidFactor       = NewDomainError("INVALID_CONVERSION_FACTOR", "Conversion factor must be positive")
	ErrInsufficientStock   = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrSaleNotFound        = NewDomainError("SALE_NOT_FOUND", "Sale not found")
	ErrSaleCancelled       = NewDomainError("SALE_ALREADY_CANCELLED", "Sale is not active")
	ErrSaleReturned        = NewDomainError("SALE_ALREADY_RETURNED", "Sale has already been fully returned")
	ErrOverReturn          = NewDomainError("OVER_RETURN", "Returned quantity exceeds the remaining quantity of the sale line")
)
