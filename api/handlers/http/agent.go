package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

func ClaimScanJob(svcGetter ServiceGetter[*service.AgentService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		res, err := srv.Claim(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		if res == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.JSON(res)
	}
}

func ReportScanProgress(svcGetter ServiceGetter[*service.AgentService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var req dto.ProgressRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body")
		}

		res, err := srv.ReportProgress(c.UserContext(), id, &req)
		if err != nil {
			return agentError(err)
		}

		return c.JSON(res)
	}
}

func FinishScanJob(svcGetter ServiceGetter[*service.AgentService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		var req dto.FinishRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body")
		}

		res, err := srv.Finish(c.UserContext(), id, &req)
		if err != nil {
			if errors.Is(err, service.ErrJobFinalized) {
				logger.WarnContext(c.UserContext(), "Finish scan job %d: rejected, job already finished", id)
			}
			return agentError(err)
		}

		return c.JSON(res)
	}
}

func GetAgentHealth(svcGetter ServiceGetter[*service.AgentService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())
		return c.JSON(srv.Health(c.UserContext()))
	}
}

func agentError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidJobID),
		errors.Is(err, service.ErrInvalidOutcome),
		errors.Is(err, service.ErrInvalidProgress),
		errors.Is(err, service.ErrInvalidPort):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrJobNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrJobFinalized):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
