// Package web serves the single-page display shell for uploading a fridge photo.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/internal/api"
	"github.com/pageza/fridge-recipes/backend/internal/service"
)

//go:embed templates/index.html
var templatesFS embed.FS

// PageData is what the page template renders
type PageData struct {
	Filename string
	Result   template.HTML
	Error    string
	Message  string
}

// Handler serves GET / and POST /
type Handler struct {
	fridgeService  service.IFridgeService
	maxUploadBytes int64
	production     bool
	tmpl           *template.Template
	log            logrus.FieldLogger
}

// NewHandler parses the embedded page template
func NewHandler(fridgeService service.IFridgeService, maxUploadBytes int64, production bool) (*Handler, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		fridgeService:  fridgeService,
		maxUploadBytes: maxUploadBytes,
		production:     production,
		tmpl:           tmpl,
		log:            logrus.WithField("component", "web"),
	}, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Index)
	router.POST("/", h.Analyze)
}

// Index renders the empty upload page
func (h *Handler) Index(c *gin.Context) {
	h.render(c, http.StatusOK, PageData{})
}

// Analyze handles the form submit and renders the suggestions or the error
func (h *Handler) Analyze(c *gin.Context) {
	image, uerr := api.ReadPhoto(c, h.maxUploadBytes)
	if uerr != nil {
		h.render(c, uerr.Status, PageData{Error: uerr.Title, Message: uerr.Message})
		return
	}

	result, err := h.fridgeService.AnalyzeFridge(c.Request.Context(), image)
	if err != nil {
		h.log.WithError(err).Error("Error analyzing fridge photo")
		h.render(c, http.StatusInternalServerError, PageData{
			Error:   "Failed to analyze photo",
			Message: api.AnalyzeErrorMessage(err, h.production),
		})
		return
	}

	body, err := RenderMarkdown(FormatMarkdown(result))
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.render(c, http.StatusOK, PageData{Filename: image.Filename, Result: body})
}

func (h *Handler) render(c *gin.Context, status int, data PageData) {
	c.Render(status, render.HTML{Template: h.tmpl, Name: "index.html", Data: data})
}
