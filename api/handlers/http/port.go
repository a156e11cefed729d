package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

func GetDownPorts(svcGetter ServiceGetter[*service.PortService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		res, err := srv.DownPorts(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}

func DeleteDownPorts(svcGetter ServiceGetter[*service.PortService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		var req dto.DeletePortsRequest
		if err := c.BodyParser(&req); err != nil {
			logger.WarnContext(c.UserContext(), "Delete ports: failed to parse request body: %v", err)
			return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body")
		}

		res, err := srv.DeletePorts(c.UserContext(), &req)
		if err != nil {
			if errors.Is(err, service.ErrEmptyPortIDs) || errors.Is(err, service.ErrInvalidPortID) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}
