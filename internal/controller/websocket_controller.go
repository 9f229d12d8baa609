package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/service"
	"github.com/benbeisheim/minimax-chess/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(raw *websocket.Conn) {
	gameID, _ := raw.Locals(middleware.LocalGameID).(string)
	playerID, _ := raw.Locals(middleware.LocalPlayerID).(string)
	c := ws.NewConn(raw)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("game %s: rejecting connection for player %s: %v", gameID, playerID, err)
		if errors.Is(err, service.ErrConnectionExists) {
			c.WriteMessage(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "connection already exists"),
			)
		}
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Warnf("parse error: %v", err)
			wsc.sendError(c, "malformed message")
			continue
		}
		if err := wsc.handleMessage(c, gameID, playerID, msg); err != nil {
			log.Infof("game %s: %v", gameID, err)
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID, c)
}

// handleMessage dispatches one client message. State changes reach the
// client through the game's broadcast.
func (wsc *WebSocketController) handleMessage(c *ws.Conn, gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move.From, move.To)

	case ws.MessageTypeUndo:
		return wsc.gameService.HandleUndo(gameID, playerID)

	case ws.MessageTypeHint:
		move, ok, err := wsc.gameService.Hint(gameID)
		if err != nil {
			return err
		}
		payload := ws.MovePayload{}
		if ok {
			payload = ws.MovePayload{From: move.From.String(), To: move.To.String()}
		}
		reply, err := ws.NewMessage(ws.MessageTypeHint, payload)
		if err != nil {
			return err
		}
		return c.WriteJSON(reply)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *ws.Conn, errorMsg string) {
	msg, err := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(msg)
}
