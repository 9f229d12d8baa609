package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/minimax-chess/internal/config"
	"github.com/benbeisheim/minimax-chess/internal/controller"
	"github.com/benbeisheim/minimax-chess/internal/middleware"
	"github.com/benbeisheim/minimax-chess/internal/service"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.PlayerIDHeader,
		ExposeHeaders:    middleware.PlayerIDHeader,
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(service.Options{
		Depth:       cfg.SearchDepth,
		Seed:        cfg.Seed,
		Perspective: cfg.SearchPerspective(),
	})
	gameService := service.NewGameService(gameManager)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket routes
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService.HasGame), websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{cfg.AllowedOrigin},
	}))

	// REST routes
	api := app.Group("/api", middleware.EnsurePlayerID())
	registerGameRoutes(api, gameController)

	log.Infof("engine searching %d plies (%s perspective), listening on %s", cfg.SearchDepth, cfg.Perspective, cfg.Addr)
	log.Fatal(app.Listen(cfg.Addr))
}

func registerGameRoutes(router fiber.Router, gc *controller.GameController) {
	gameRoutes := router.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/undo", gc.Undo)
	gameRoutes.Get("/:gameId/best", gc.Hint)
}
