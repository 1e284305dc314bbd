package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge-recipes/backend/internal/middleware"
	"github.com/pageza/fridge-recipes/backend/internal/service"
)

// jpegHeader is enough of a JPEG for content sniffing
var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

// SetupTestRouter builds a router with the error handler and all API routes
func SetupTestRouter(t *testing.T, recipes service.IRecipeService, fridge service.IFridgeService, production bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.ErrorHandler(production))
	RegisterRoutes(router,
		NewRecipeHandler(recipes),
		NewFridgeHandler(fridge, 10<<20, production),
	)
	return router
}

// NewPhotoRequest builds a multipart POST with one file part.
// An empty contentType leaves the part without a Content-Type header.
func NewPhotoRequest(t *testing.T, path, field, filename, contentType string, data []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// PerformRequest executes req against router
func PerformRequest(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
