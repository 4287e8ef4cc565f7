package coefficient

import "fmt"

// ValidationError is a local failure that blocks saving a line item.
// It is raised before any persistence call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	ErrVolumeIncomplete   = &ValidationError{Field: "coefficientList", Message: "volume must be completed"}
	ErrMissingCatalogItem = &ValidationError{Field: "catalogItem", Message: "a catalog item must be selected"}
	ErrMissingDescription = &ValidationError{Field: "description", Message: "description is required"}
	ErrMissingUnit        = &ValidationError{Field: "unit", Message: "unit is required"}
	ErrInvalidPrice       = &ValidationError{Field: "unitPrice", Message: "unit price must not be negative"}
	ErrInvalidTaxRate     = &ValidationError{Field: "taxRatePercent", Message: "tax rate must be 0 or 11"}
	ErrMissingParent      = &ValidationError{Field: "parentBudgetId", Message: "line item must belong to a budget"}
	ErrTotalOutOfRange    = &ValidationError{Field: "total", Message: "volume or total is too large"}
)
