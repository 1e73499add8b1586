package service

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrValidation        = errors.New("validation")          // 400
	ErrInvalidID         = errors.New("invalid identifier")  // 400
	ErrConflict          = errors.New("duplicate key")       // 400
	ErrInsufficientStock = errors.New("insufficient stock")  // 400
	ErrUnauthorized      = errors.New("unauthorized")        // 401
	ErrForbidden         = errors.New("forbidden")           // 403
	ErrNotFound          = errors.New("not found")           // 404
)

// translate maps collaborator failures to the nearest taxonomy kind;
// anything unrecognized passes through and surfaces as a 500.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrConflict
	default:
		return err
	}
}
