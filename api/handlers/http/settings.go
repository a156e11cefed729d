package http

import (
	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
)

func GetScanSettings(svcGetter ServiceGetter[*service.SettingsService]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		srv := svcGetter(c.UserContext())

		res, err := srv.GetScanSettings(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		return c.JSON(res)
	}
}
