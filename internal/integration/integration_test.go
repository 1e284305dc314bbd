package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge-recipes/backend/config"
	"github.com/pageza/fridge-recipes/backend/internal/logging"
	"github.com/pageza/fridge-recipes/backend/internal/server"
	"github.com/pageza/fridge-recipes/backend/internal/service"
	"github.com/pageza/fridge-recipes/backend/internal/testhelpers"
)

var jpeg = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01}

// fakeGemini answers generateContent with text, or with an error envelope when status is not 200
func fakeGemini(t *testing.T, status int, text string, calls *int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"status":"RESOURCE_EXHAUSTED"}}`, status, text)
			return
		}
		body, _ := json.Marshal(map[string]interface{}{
			"candidates": []interface{}{
				map[string]interface{}{"content": map[string]interface{}{
					"parts": []interface{}{map[string]interface{}{"text": text}},
				}},
			},
		})
		_, _ = w.Write(body)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func newServer(t *testing.T, env config.Environment, geminiURL string) http.Handler {
	t.Helper()
	cfg := &config.Config{
		ServerPort:     "0",
		Environment:    env,
		CORSOrigin:     config.DefaultCORSOrigin,
		VisionProvider: config.ProviderGemini,
		VisionTimeout:  5 * time.Second,
		Gemini: config.ProviderConfig{
			APIKey: "test-key",
			APIURL: geminiURL,
			Model:  config.DefaultGeminiModel,
		},
		MaxUploadBytes:  config.DefaultMaxUploadBytes,
		RateLimitWindow: config.DefaultRateLimitWin,
		RateLimitMax:    config.DefaultRateLimitMax,
	}

	provider, err := service.NewVisionProvider(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	srv, err := server.New(ctx, cfg, testhelpers.SetupSQLite(t), provider, logging.Discard())
	require.NoError(t, err)
	return srv.Handler()
}

func upload(t *testing.T, h http.Handler, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="fridge.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recipes/analyze-fridge", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Origin", config.DefaultCORSOrigin)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAnalyzeFridgeFlow_Freeform(t *testing.T) {
	calls := 0
	gemini := fakeGemini(t, http.StatusOK, "Recipe A: ...", &calls)
	h := newServer(t, config.Development, gemini.URL)

	w := upload(t, h, "image/jpeg", jpeg)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, config.DefaultCORSOrigin, w.Header().Get("Access-Control-Allow-Origin"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Recipe A: ...", resp["recipes"])
	assert.Equal(t, 1, calls)
}

func TestAnalyzeFridgeFlow_StructuredInCodeFence(t *testing.T) {
	calls := 0
	gemini := fakeGemini(t, http.StatusOK, "```json\n{\"recipes\":[{\"name\":\"Fried Rice\",\"ingredients\":[\"rice\",\"egg\"],\"instructions\":[\"Fry egg\",\"Add rice\"],\"cooking_time\":15}]}\n```", &calls)
	h := newServer(t, config.Development, gemini.URL)

	w := upload(t, h, "image/jpeg", jpeg)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Format  string `json:"format"`
		Recipes []struct {
			Name         string   `json:"name"`
			Ingredients  []string `json:"ingredients"`
			Instructions string   `json:"instructions"`
			CookingTime  string   `json:"cookingTime"`
		} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "structured", resp.Format)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Fried Rice", resp.Recipes[0].Name)
	assert.Equal(t, "Fry egg\nAdd rice", resp.Recipes[0].Instructions)
	assert.Equal(t, "15", resp.Recipes[0].CookingTime)
}

func TestAnalyzeFridgeFlow_ProviderQuotaError(t *testing.T) {
	for _, tt := range []struct {
		env     config.Environment
		message string
	}{
		{config.Development, "Quota exceeded for this project"},
		{config.Production, "Internal server error"},
	} {
		t.Run(string(tt.env), func(t *testing.T) {
			calls := 0
			gemini := fakeGemini(t, http.StatusTooManyRequests, "Quota exceeded for this project", &calls)
			h := newServer(t, tt.env, gemini.URL)

			w := upload(t, h, "image/jpeg", jpeg)
			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Failed to analyze photo", resp["error"])
			assert.Equal(t, tt.message, resp["message"])
			assert.Equal(t, 1, calls, "no retries")
		})
	}
}

func TestAnalyzeFridgeFlow_RejectedUploadNeverReachesProvider(t *testing.T) {
	calls := 0
	gemini := fakeGemini(t, http.StatusOK, "unused", &calls)
	h := newServer(t, config.Development, gemini.URL)

	w := upload(t, h, "application/pdf", []byte("%PDF-1.4"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, calls)
}

func TestSampleRecipesAndHealth(t *testing.T) {
	calls := 0
	h := newServer(t, config.Development, fakeGemini(t, http.StatusOK, "", &calls).URL)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pasta Carbonara")
	assert.Contains(t, w.Body.String(), "Chicken Stir Fry")

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"OK"`)
}
