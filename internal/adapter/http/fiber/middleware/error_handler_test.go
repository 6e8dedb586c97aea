package middleware

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("vehicle v-1: %w", domain.ErrAlreadyExists), fiber.StatusConflict},
		{domain.ErrConcurrentUpdate, fiber.StatusConflict},
		{domain.ErrBayConflict, fiber.StatusConflict},
		{fmt.Errorf("ticket t-9: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrValidation, fiber.StatusBadRequest},
		{domain.ErrPolicyViolation, fiber.StatusUnprocessableEntity},
		{fiber.NewError(fiber.StatusForbidden, "nope"), fiber.StatusForbidden},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
