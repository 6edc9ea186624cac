// Converts service-layer errors into API errors.

package handlers

import (
	"errors"

	"github.com/vibebase/vibebase/internal/jsonldb"
	"github.com/vibebase/vibebase/internal/news"
	"github.com/vibebase/vibebase/internal/server/dto"
)

// ToAPIError maps the store and service error taxonomy onto structured API
// errors. Unknown errors become 500s; every failure kind below is
// deterministic for a given input, so callers retrying unchanged requests
// will reproduce the same failure.
func ToAPIError(err error) error {
	if err == nil {
		return nil
	}
	var ews dto.ErrorWithStatus
	if errors.As(err, &ews) {
		return err
	}
	var validation *news.ValidationError
	if errors.As(err, &validation) {
		if validation.Reason == "" {
			return dto.MissingField(validation.Field)
		}
		return dto.InvalidField(validation.Field, validation.Reason)
	}
	var conflict *news.ConflictError
	if errors.As(err, &conflict) {
		return dto.Conflict(err.Error()).
			WithDetail("resource", conflict.Resource).
			WithDetail("field", conflict.Field).
			WithDetail("value", conflict.Value)
	}
	var notFound *news.NotFoundError
	if errors.As(err, &notFound) {
		return dto.NotFound(notFound.Resource).WithDetail("id", notFound.ID)
	}
	var fk *jsonldb.ForeignKeyError
	if errors.As(err, &fk) {
		return dto.NewAPIError(400, dto.ErrorCodeForeignKeyViolation, err.Error()).
			WithDetail("field", fk.Field).
			WithDetail("value", fk.Value).
			WithDetail("targetCollection", fk.TargetCollection)
	}
	var integrity *jsonldb.IntegrityError
	if errors.As(err, &integrity) {
		return dto.NewAPIError(409, dto.ErrorCodeReferentialIntegrity, err.Error()).
			WithDetail("collection", integrity.Collection).
			WithDetail("id", integrity.ID).
			WithDetail("blockingCollection", integrity.BlockingCollection).
			WithDetail("field", integrity.Field)
	}
	var storageErr *jsonldb.StorageError
	if errors.As(err, &storageErr) {
		return dto.NewAPIError(500, dto.ErrorCodeStorageError, "storage operation failed").Wrap(err)
	}
	return dto.InternalWithError("internal error", err)
}
