package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_categories_slug"})

	assert.True(t, isDuplicateKeyError(err, "slug"))
	assert.False(t, isDuplicateKeyError(err, "email"))
	assert.False(t, isDuplicateKeyError(errors.New("boom"), "slug"))
}

func TestIsForeignKeyError(t *testing.T) {
	err := &pgconn.PgError{Code: "23503", ConstraintName: "fk_categories_children"}

	assert.True(t, isForeignKeyError(err, "categories"))
	assert.False(t, isDuplicateKeyError(err, "categories"))
}
