package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	jwt2 "github.com/golang-jwt/jwt/v5"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/jwt"
)

func userClaims(ctx *fiber.Ctx) *jwt.UserClaims {
	if u := ctx.Locals("user"); u != nil {
		token, ok := u.(*jwt2.Token)
		if !ok {
			return nil
		}
		userClaims, ok := token.Claims.(*jwt.UserClaims)
		if ok {
			return userClaims
		}
	}

	return nil
}

type ServiceGetter[T any] func(context.Context) T

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// errorHandler renders fiber errors as JSON.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(ErrorResponse{Error: err.Error()})
}

// paramID reads a positive integer path parameter.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return int64(id), nil
}
