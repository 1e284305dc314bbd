package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/internal/middleware"
	"github.com/pageza/fridge-recipes/backend/internal/service"
)

const analyzeSuccessMessage = "Recipe suggestions generated successfully!"

// FridgeHandler handles fridge photo uploads
type FridgeHandler struct {
	fridgeService  service.IFridgeService
	maxUploadBytes int64
	production     bool
}

// NewFridgeHandler creates a new fridge handler
func NewFridgeHandler(fridgeService service.IFridgeService, maxUploadBytes int64, production bool) *FridgeHandler {
	return &FridgeHandler{
		fridgeService:  fridgeService,
		maxUploadBytes: maxUploadBytes,
		production:     production,
	}
}

func (h *FridgeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recipes/analyze-fridge", h.AnalyzeFridge)
	router.POST("/analyze-fridge", h.AnalyzeFridge)
}

// AnalyzeFridge validates the uploaded photo and returns recipe suggestions
func (h *FridgeHandler) AnalyzeFridge(c *gin.Context) {
	image, uerr := ReadPhoto(c, h.maxUploadBytes)
	if uerr != nil {
		c.JSON(uerr.Status, gin.H{
			"error":   uerr.Title,
			"message": uerr.Message,
		})
		return
	}

	result, err := h.fridgeService.AnalyzeFridge(c.Request.Context(), image)
	if err != nil {
		logrus.WithError(err).WithField("filename", image.Filename).Error("Error analyzing fridge photo")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to analyze photo",
			"message": AnalyzeErrorMessage(err, h.production),
		})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{
		Success: true,
		Recipes: result.Payload(),
		Format:  result.Format,
		Message: analyzeSuccessMessage,
	})
}

// AnalyzeErrorMessage picks what the caller sees for a failed analysis.
// A missing credential is always explained; provider text is shown outside production only.
func AnalyzeErrorMessage(err error, production bool) string {
	if errors.Is(err, service.ErrMissingCredential) {
		return "The vision provider API key is not configured on the server"
	}

	var perr *service.ProviderError
	if !production && errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return middleware.ErrorMessage(err, production)
}
