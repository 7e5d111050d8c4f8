package handler

import (
	"github.com/gofiber/fiber/v3"

	"movie-streaming-service/internal/middleware"
	"movie-streaming-service/internal/service"
)

// Services groups the business services exposed over HTTP.
type Services struct {
	Users           *service.UserService
	Movies          *service.MovieService
	Categories      *service.LookupService
	Regions         *service.LookupService
	Carousels       *service.CarouselService
	Orders          *service.OrderService
	Interactions    *service.InteractionService
	Collections     *service.CollectionService
	Messages        *service.MessageService
	Recommendations *service.RecommendationService
	Statistics      *service.StatisticsService
}

// RegisterRoutes mounts the /api routes. Reads of the catalog are public;
// everything else needs a session, and mutations of shared data need an admin.
func RegisterRoutes(app *fiber.App, svcs Services, tokens middleware.TokenValidator) {
	authed := middleware.Auth(tokens)
	admin := middleware.AdminOnly()

	users := NewUserHandler(svcs.Users)
	movies := NewMovieHandler(svcs.Movies)
	categories := NewLookupHandler(svcs.Categories)
	regions := NewLookupHandler(svcs.Regions)
	carousels := NewCarouselHandler(svcs.Carousels)
	orders := NewOrderHandler(svcs.Orders)
	interactions := NewInteractionHandler(svcs.Interactions)
	collections := NewCollectionHandler(svcs.Collections)
	messages := NewMessageHandler(svcs.Messages)
	recommend := NewRecommendationHandler(svcs.Recommendations)
	stats := NewStatisticsHandler(svcs.Statistics)

	api := app.Group("/api")

	api.Post("/auth/register", users.Register)
	api.Post("/auth/login", users.Login)

	api.Get("/movies", movies.ListMovies)
	api.Get("/movies/:id", movies.GetMovie)
	api.Post("/movies", authed, admin, movies.CreateMovie)
	api.Put("/movies/:id", authed, admin, movies.UpdateMovie)
	api.Delete("/movies/:id", authed, admin, movies.DeleteMovie)
	api.Post("/admin/tmdb/import", authed, admin, movies.ImportFromTMDB)

	for prefix, h := range map[string]*LookupHandler{"/categories": categories, "/regions": regions} {
		api.Get(prefix, h.List)
		api.Get(prefix+"/:id", h.Get)
		api.Post(prefix, authed, admin, h.Create)
		api.Put(prefix+"/:id", authed, admin, h.Update)
		api.Delete(prefix+"/:id", authed, admin, h.Delete)
	}

	api.Get("/carousels", carousels.List)
	api.Get("/carousels/:id", carousels.Get)
	api.Post("/carousels", authed, admin, carousels.Create)
	api.Put("/carousels/:id", authed, admin, carousels.Update)
	api.Delete("/carousels/:id", authed, admin, carousels.Delete)

	api.Get("/movie-interactions/movie/:movieId/comments", interactions.ListComments)
	api.Get("/movie-interactions/user/:userId/movie/:movieId", authed, interactions.GetInteraction)
	api.Put("/movie-interactions/user/:userId/movie/:movieId", authed, interactions.UpsertInteraction)
	api.Post("/movie-interactions/user/:userId/movie/:movieId/play", authed, interactions.RecordPlay)

	api.Post("/orders", authed, orders.CreateOrder)
	api.Get("/orders", authed, admin, orders.ListOrders)
	api.Get("/orders/check", authed, orders.CheckPurchase)
	api.Get("/orders/user/:userId", authed, orders.ListUserOrders)
	api.Get("/orders/entitlements/:userId", authed, orders.ListEntitlements)
	api.Get("/orders/:id", authed, orders.GetOrder)
	api.Post("/orders/:id/pay", authed, orders.PayOrder)
	api.Post("/orders/:id/cancel", authed, orders.CancelOrder)

	api.Get("/collections", authed, collections.List)
	api.Get("/collections/check", authed, collections.Check)
	api.Get("/collections/:id/movies", authed, collections.ListMovies)
	api.Post("/collections", authed, collections.Create)
	api.Put("/collections/:id", authed, collections.Update)
	api.Delete("/collections/:id", authed, collections.Delete)
	api.Post("/collections/:id/movies", authed, collections.AddMovie)
	api.Delete("/collections/:id/movies/:movieId", authed, collections.RemoveMovie)

	api.Post("/messages", authed, messages.Create)
	api.Get("/messages/user/:userId", authed, messages.ListByUser)
	api.Get("/messages/admin/all", authed, admin, messages.ListAll)
	api.Put("/messages/:id/status", authed, admin, messages.UpdateStatus)
	api.Delete("/messages/:id", authed, admin, messages.Delete)

	api.Post("/recommend", authed, recommend.Recommend)

	api.Get("/users", authed, admin, users.ListUsers)
	api.Get("/users/:id", authed, admin, users.GetUser)
	api.Post("/users", authed, admin, users.CreateUser)
	api.Put("/users/:id", authed, admin, users.UpdateUser)
	api.Delete("/users/:id", authed, admin, users.DeleteUser)

	api.Get("/statistics/overview", authed, admin, stats.Overview)
	api.Get("/statistics/sales", authed, admin, stats.Sales)
	api.Get("/statistics/movie-interactions", authed, admin, stats.MovieInteractions)
	api.Get("/statistics/user-preferences", authed, admin, stats.UserPreferences)
}

// Health returns service health status.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "movie-streaming-service",
	})
}
