package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-Id"

// sessionID resolves the caller's session, minting one when the header is
// absent, and echoes it back so the client can reuse it.
func sessionID(ctx *fiber.Ctx) string {
	id := ctx.Get(sessionHeader)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Set(sessionHeader, id)
	return id
}
