// Package service holds the domain operations behind the HTTP handlers. A
// write is field-validated, then its references are resolved, and only then
// persisted; a rejected write never reaches the repository.
package service

import (
	"errors"
	"fmt"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/storage"
)

// Entity names used in NotFound messages.
const (
	entityUser    = "User"
	entityExpense = "Expense"
	entityPayment = "Payment"
	entityIncome  = "Income"
	entitySaving  = "Saving"
)

// lookupErr classifies a failed lookup of entity id.
func lookupErr(entity string, id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return apperr.Internal(fmt.Errorf("load %s %d: %w", entity, id, err))
}

// writeErr classifies a failed repository write. A missing row at write time
// means the record vanished after the reference checks ran.
func writeErr(op, entity string, id int64, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(entity, id)
	}
	return apperr.Internal(fmt.Errorf("%s %s: %w", op, entity, err))
}
