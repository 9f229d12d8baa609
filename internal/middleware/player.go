package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys shared with the controllers.
const (
	LocalPlayerID = "playerID"
	LocalGameID   = "gameID"
)

const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID identifies the caller from the X-Player-ID header or the
// playerId query parameter. A caller without one is given a fresh id, echoed
// back in the X-Player-ID response header so the client can keep its seat.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PlayerID(c) != "" {
			return c.Next()
		}

		playerID := c.Get(PlayerIDHeader)
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			playerID = uuid.New().String()
			c.Set(PlayerIDHeader, playerID)
		}

		c.Locals(LocalPlayerID, playerID)
		return c.Next()
	}
}

// PlayerID returns the id stored by EnsurePlayerID, or "".
func PlayerID(c *fiber.Ctx) string {
	playerID, _ := c.Locals(LocalPlayerID).(string)
	return playerID
}
