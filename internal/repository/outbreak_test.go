package repository

import (
	"errors"
	"testing"

	"github.com/bayillag/epigeo_surveillance/internal/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapWriteError_UniqueViolation(t *testing.T) {
	// Подготовка
	pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "samples_field_id_key"}

	// Действие
	err := mapWriteError(pgErr, "sample", "SO-001", "field_id", "failed to insert sample")

	// Проверки
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sample", verr.Entity)
	assert.Equal(t, "SO-001", verr.ID)
	assert.Equal(t, "field_id", verr.Field)
}

func TestMapWriteError_Other(t *testing.T) {
	cause := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	err := mapWriteError(cause, "sample", "SO-001", "field_id", "failed to insert sample")

	var verr *models.ValidationError
	assert.False(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to insert sample")
}
