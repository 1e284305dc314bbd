package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/config"
	"github.com/pageza/fridge-recipes/backend/internal/api"
	"github.com/pageza/fridge-recipes/backend/internal/middleware"
	"github.com/pageza/fridge-recipes/backend/internal/service"
	"github.com/pageza/fridge-recipes/backend/internal/web"
)

// Dependencies are the collaborators the routes are built from
type Dependencies struct {
	Config         *config.Config
	Logger         logrus.FieldLogger
	RecipeService  service.IRecipeService
	FridgeService  service.IFridgeService
	RateLimitStore middleware.RateLimitStore
}

// SetupRouter configures the middleware chain and the application routes
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	production := cfg.IsProduction()

	router := gin.New()
	router.Use(middleware.ErrorHandler(production))
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.SecurityHeaders())

	// counted before CORS, which answers preflights itself
	limiter := middleware.NewGlobalRateLimiter(deps.RateLimitStore, cfg.RateLimitWindow, cfg.RateLimitMax)
	router.Use(limiter.RateLimitMiddleware())
	router.Use(middleware.CORS(cfg.CORSOrigin))

	shell, err := web.NewHandler(deps.FridgeService, cfg.MaxUploadBytes, production)
	if err != nil {
		return nil, err
	}
	shell.RegisterRoutes(router)

	api.RegisterRoutes(router,
		api.NewRecipeHandler(deps.RecipeService),
		api.NewFridgeHandler(deps.FridgeService, cfg.MaxUploadBytes, production),
	)

	return router, nil
}
