package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

// StreamScanJob pushes job snapshots as server-sent events until the job is
// finished, the client goes away or shutdown is done.
func StreamScanJob(svcGetter ServiceGetter[*service.ScanJobService], shutdown context.Context) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return err
		}

		// c is recycled once the handler returns, so everything the stream
		// writer needs is captured here.
		ctx := c.UserContext()
		srv := svcGetter(ctx)

		c.Set(fiber.HeaderContentType, "text/event-stream")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set(fiber.HeaderConnection, "keep-alive")
		c.Set("X-Accel-Buffering", "no")

		c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
			streamCtx, cancel := withShutdown(ctx, shutdown)
			defer cancel()

			err := srv.Subscribe(streamCtx, id, func(ev dto.StreamEvent) error {
				return writeStreamEvent(w, ev)
			})
			if err != nil {
				logger.InfoContext(ctx, "Stream scan job %d: closed: %v", id, err)
			}
		})

		return nil
	}
}

// withShutdown derives a context from ctx, keeping its values, that is also
// canceled once shutdown is done.
func withShutdown(ctx, shutdown context.Context) (context.Context, context.CancelFunc) {
	streamCtx, cancel := context.WithCancel(ctx)
	if shutdown.Err() != nil {
		cancel()
		return streamCtx, cancel
	}
	stop := context.AfterFunc(shutdown, cancel)
	return streamCtx, func() {
		stop()
		cancel()
	}
}

// writeStreamEvent writes one SSE frame and flushes it. A flush error means
// the client disconnected.
func writeStreamEvent(w *bufio.Writer, ev dto.StreamEvent) error {
	if ev.Keepalive {
		if _, err := w.WriteString(": keepalive\n\n"); err != nil {
			return err
		}
		return w.Flush()
	}

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
