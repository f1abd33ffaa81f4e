package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldError(t *testing.T) {
	cause := errors.New("not a number")
	err := fmt.Errorf("parsing query: %w", NewFieldError("price", "cheap", cause))

	assert.ErrorIs(t, err, ErrInvalidQueryValue)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `price="cheap"`)

	var fieldErr *FieldError
	assert.True(t, errors.As(err, &fieldErr))
	assert.Equal(t, "price", fieldErr.Field)
}

func TestSchemaError(t *testing.T) {
	err := &SchemaError{Source: "toyota.csv", Missing: []string{"mpg", "horsepower"}}

	assert.ErrorIs(t, err, ErrSchemaMismatch)
	assert.Equal(t, "catalog schema mismatch: toyota.csv: missing column(s) mpg, horsepower", err.Error())
	assert.Equal(t, "catalog schema mismatch: missing column(s) mpg", (&SchemaError{Missing: []string{"mpg"}}).Error())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "user error",
			err:  fmt.Errorf("wrapped: %w", NewUserError("Configuration is invalid", ErrInvalidConfig)),
			want: "Configuration is invalid",
		},
		{
			name: "field error",
			err:  NewFieldError("year", "2020.5", errors.New("expected a whole number")),
			want: `Invalid value for year: "2020.5"`,
		},
		{
			name: "plain error",
			err:  ErrCatalogEmpty,
			want: "catalog not loaded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserError(t *testing.T) {
	err := NewUserError("Import failed", ErrInvalidRow)
	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.Equal(t, "Import failed: invalid catalog row", err.Error())
	assert.Equal(t, "Import failed", (&UserError{UserMessage: "Import failed"}).Error())
}
