package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/minimax-chess/internal/model"
	"github.com/benbeisheim/minimax-chess/internal/service"
)

// statusFor maps service and engine errors to HTTP status codes.
func statusFor(err error) int {
	var moveErr *model.MoveError
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrEmptyHistory):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrInvalidColor), errors.Is(err, model.ErrInvalidSquare):
		return fiber.StatusBadRequest
	case errors.As(err, &moveErr), errors.Is(err, service.ErrGameOver), errors.Is(err, service.ErrNotYourTurn):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
