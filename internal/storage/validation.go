// Package storage provides the data persistence layer for the vehicle catalog.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/carpicker/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidVehicle = errors.New("invalid vehicle")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateVehicles validates a catalog before it is stored.
func validateVehicles(vehicles []model.Vehicle) error {
	if vehicles == nil {
		return fmt.Errorf("%w: vehicles", ErrNilParameter)
	}

	for i := range vehicles {
		if err := validateVehicle(&vehicles[i]); err != nil {
			return fmt.Errorf("vehicle at index %d: %w", i, err)
		}
	}
	return nil
}

// validateVehicle validates a single vehicle.
func validateVehicle(v *model.Vehicle) error {
	if v == nil {
		return fmt.Errorf("%w: vehicle", ErrNilParameter)
	}
	if strings.TrimSpace(v.Model) == "" {
		return fmt.Errorf("%w: missing model", ErrInvalidVehicle)
	}

	for _, a := range v.Amounts() {
		if err := model.CheckAmount(*a.Value); err != nil {
			return fmt.Errorf("%w: %s %w", ErrInvalidVehicle, a.Column, err)
		}
	}
	return nil
}
