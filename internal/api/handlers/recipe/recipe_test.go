package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budget-recipe-api/internal/core/ai/provider"
	recipeService "budget-recipe-api/internal/core/recipe"
	"budget-recipe-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeJSON = `{"dishName":"Linsesuppe","heroEmoji":"🥣","funIntro":"Varm og billig!","ingredients":[{"name":"Linser","lidlProductName":"Favorit Røde Linser","price":12.95,"onSale":true,"checked":true}],"steps":["Skyl linserne"],"totalCost":12.95,"savings":3.24}`

type stubProvider struct {
	content string
	err     error
	calls   int
	last    *provider.Request
}

func (s *stubProvider) Complete(_ context.Context, req *provider.Request) (*provider.Response, error) {
	s.calls++
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &provider.Response{Content: s.content}, nil
}

func (s *stubProvider) Name() string     { return "stub" }
func (s *stubProvider) GetModel() string { return "stub-model" }
func (s *stubProvider) Close() error     { return nil }

func newRouter(svc *recipeService.Service, dev bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Any("/api/recipe", NewHandler(svc, dev).HandleRecipe)
	return r
}

func do(r http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/recipe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestNonPostIsRejectedWithoutProviderCall(t *testing.T) {
	p := &stubProvider{content: recipeJSON}
	r := newRouter(recipeService.NewService(p, nil), false)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		w := do(r, method, "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
		assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
	}
	assert.Zero(t, p.calls)
}

func TestPostReturnsRecipe(t *testing.T) {
	p := &stubProvider{content: "```json\n" + recipeJSON + "\n```"}
	r := newRouter(recipeService.NewService(p, nil), false)

	w := do(r, http.MethodPost, `{"budget":100,"ingredients":["pasta","tomato"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, recipeJSON, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	require.Equal(t, 1, p.calls)
	assert.Equal(t, "I have a budget of 100 DKK. I have these ingredients: pasta, tomato", p.last.Messages[0].Content)
	assert.Equal(t, recipeService.MaxOutputTokens, p.last.MaxTokens)
}

func TestSurpriseOverridesOtherFields(t *testing.T) {
	p := &stubProvider{content: recipeJSON}
	r := newRouter(recipeService.NewService(p, nil), false)

	w := do(r, http.MethodPost, `{"budget":40,"ingredients":["egg"],"surpriseMe":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, p.last.Messages[0].Content, "Surprise me")
}

func TestEmptyBodyUsesFallbackPrompt(t *testing.T) {
	p := &stubProvider{content: recipeJSON}
	r := newRouter(recipeService.NewService(p, nil), false)

	for _, body := range []string{"", "{}"} {
		w := do(r, http.MethodPost, body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Create a healthy recipe for me.", p.last.Messages[0].Content)
	}
}

func TestMalformedOutputDetailsOnlyInDevelopment(t *testing.T) {
	p := &stubProvider{content: "I am not JSON"}

	w := do(newRouter(recipeService.NewService(p, nil), true), http.MethodPost, `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, common.ChefUnavailableMessage, resp.Error)
	assert.Contains(t, resp.Details, "invalid character")

	w = do(newRouter(recipeService.NewService(p, nil), false), http.MethodPost, `{}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+common.ChefUnavailableMessage+`"}`, w.Body.String())
}

func TestProviderErrorIsGeneric500(t *testing.T) {
	p := &stubProvider{err: errors.New("upstream timeout")}

	w := do(newRouter(recipeService.NewService(p, nil), true), http.MethodPost, `{"surpriseMe":true}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, common.ChefUnavailableMessage, resp.Error)
	assert.Equal(t, "upstream timeout", resp.Details)
	assert.Equal(t, 1, p.calls)
}

func TestMissingCredentialFailsFirstRequest(t *testing.T) {
	svc := recipeService.NewService(nil, common.ErrConfiguration.Wrap(provider.ErrMissingAPIKey))

	w := do(newRouter(svc, true), http.MethodPost, `{"budget":50}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, common.ChefUnavailableMessage, resp.Error)
	assert.Equal(t, provider.ErrMissingAPIKey.Error(), resp.Details)
}

func TestInvalidBodyIsGeneric500(t *testing.T) {
	p := &stubProvider{content: recipeJSON}

	w := do(newRouter(recipeService.NewService(p, nil), false), http.MethodPost, `{"ingredients":"pasta"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, common.ChefUnavailableMessage, decodeError(t, w).Error)
	assert.Zero(t, p.calls)
}

func TestOversizeBodyIsGeneric500(t *testing.T) {
	p := &stubProvider{content: recipeJSON}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 16)
		c.Next()
	})
	r.Any("/api/recipe", NewHandler(recipeService.NewService(p, nil), true).HandleRecipe)

	w := do(r, http.MethodPost, `{"ingredients":["`+strings.Repeat("x", 64)+`"]}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, common.ChefUnavailableMessage, resp.Error)
	assert.Contains(t, resp.Details, "request body too large")
	assert.Zero(t, p.calls)
}

func TestOutcomeFor(t *testing.T) {
	assert.Equal(t, "configuration_error", outcomeFor(common.ErrCodeConfiguration))
	assert.Equal(t, "provider_error", outcomeFor(common.ErrCodeProvider))
	assert.Equal(t, "malformed_output", outcomeFor(common.ErrCodeMalformedOutput))
	assert.Equal(t, "invalid_request", outcomeFor(common.ErrCodeInvalidRequest))
	assert.Equal(t, common.ErrCodeInternalError, outcomeFor("whatever"))
}
