package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/linskybing/programhub/internal/api/middleware"
	"github.com/linskybing/programhub/internal/api/routes"
	"github.com/linskybing/programhub/internal/application"
	"github.com/linskybing/programhub/internal/config"
	"github.com/linskybing/programhub/internal/domain/program"
	"github.com/linskybing/programhub/internal/repository"
	"github.com/linskybing/programhub/internal/repository/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T, limiter *middleware.RateLimiter) (*gin.Engine, *mock.MockApplicationRepo) {
	gin.SetMode(gin.TestMode)
	config.JwtSecret = "router-test-secret"
	config.Issuer = "programhub-test"
	middleware.Init()

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })
	repo := mock.NewMockApplicationRepo(ctrl)

	svc := application.New(&repository.Repos{Application: repo}, nil, nil)
	r := gin.New()
	routes.RegisterRoutes(r, svc, nil, limiter)
	return r, repo
}

func token(t *testing.T, uid uint, admin bool) string {
	t.Helper()
	tok, err := middleware.GenerateToken(uid, "user", admin, time.Hour)
	require.NoError(t, err)
	return tok
}

func do(r *gin.Engine, method, path, tok string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicEndpoints(t *testing.T) {
	r, _ := setupRouter(t, nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/healthz", "").Code)

	w := do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestApplicationRoutesRequireToken(t *testing.T) {
	r, _ := setupRouter(t, nil)

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/applications", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/applications", "garbage").Code)

	expired, err := middleware.GenerateToken(1, "user", false, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/applications", expired).Code)
}

func TestListRoute(t *testing.T) {
	r, repo := setupRouter(t, nil)
	repo.EXPECT().List(gomock.Any(), uint(3)).Return([]program.Application{}, nil)

	w := do(r, http.MethodGet, "/applications", token(t, 3, false))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r, repo := setupRouter(t, nil)
	id := uuid.NewString()

	w := do(r, http.MethodPut, "/admin/applications/"+id+"/review", token(t, 3, false))
	assert.Equal(t, http.StatusForbidden, w.Code)

	app := &program.Application{ID: id, OwnerID: 3, Status: program.StatusSubmitted}
	repo.EXPECT().FindByID(gomock.Any(), id).Return(app, nil)
	repo.EXPECT().AdminUpdate(gomock.Any(), id, program.StatusSubmitted, gomock.Any(), gomock.Any()).
		Return(&program.Application{ID: id, OwnerID: 3, Status: program.StatusUnderReview}, nil)

	w = do(r, http.MethodPut, "/admin/applications/"+id+"/review", token(t, 9, true))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"under_review"`)
}

func TestRateLimiter(t *testing.T) {
	r, repo := setupRouter(t, middleware.NewRateLimiter(0.001, 2))
	repo.EXPECT().List(gomock.Any(), uint(5)).Return([]program.Application{}, nil).Times(2)

	tok := token(t, 5, false)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/applications", tok).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/applications", tok).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodGet, "/applications", tok).Code)

	// buckets are per user
	repo.EXPECT().List(gomock.Any(), uint(6)).Return([]program.Application{}, nil)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/applications", token(t, 6, false)).Code)
}

func TestNotificationsDisabledWithoutHub(t *testing.T) {
	r, _ := setupRouter(t, nil)
	w := do(r, http.MethodGet, "/ws/applications", token(t, 3, false))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
