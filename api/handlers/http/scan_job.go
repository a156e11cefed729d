package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

func CreateScanJob(svcGetter ServiceGetter[*service.ScanJobService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		var req dto.CreateScanJobRequest
		if err := c.BodyParser(&req); err != nil {
			logger.WarnContext(c.UserContext(), "Create scan job: failed to parse request body: %v", err)
			return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body")
		}

		res, err := srv.CreateJob(c.UserContext(), &req)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidTargetID):
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			case errors.Is(err, service.ErrTargetNotFound):
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		status := fiber.StatusCreated
		if res.AlreadyRunning {
			status = fiber.StatusOK
		}
		return c.Status(status).JSON(res)
	}
}

func CancelScanJob(svcGetter ServiceGetter[*service.ScanJobService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		logger.InfoContext(c.UserContext(), "Attempting to cancel scan job with ID: %d", id)

		res, err := srv.CancelJob(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrInvalidScanJobID) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}

func GetScanJobByID(svcGetter ServiceGetter[*service.ScanJobService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		res, err := srv.GetJob(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, service.ErrInvalidScanJobID) {
				return fiber.ErrBadRequest
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}

func GetActiveScanJobs(svcGetter ServiceGetter[*service.ScanJobService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		res, err := srv.ListActive(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}

func RunSweep(svcGetter ServiceGetter[*service.ScanJobService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		res, err := srv.RunSweep(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}
