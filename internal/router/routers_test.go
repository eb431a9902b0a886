package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deelaka-ransilu/bridal-shop-backend/config"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/handler"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/middleware"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/service"
)

type usersByID map[uint]*model.User

func (u usersByID) GetByID(_ context.Context, id uint) (*model.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestSetupRoutes_Guards(t *testing.T) {
	gin.SetMode(gin.TestMode)

	customer := &model.User{UserID: 3, Email: "c@example.com", Role: model.RoleCustomer, IsActive: true}
	jwtService := service.NewJWTService("secret", time.Minute)
	jwtMw := middleware.NewJWTMiddleware(jwtService, usersByID{3: customer})

	cfg := &config.Config{}
	cfg.App.Timeout = time.Second

	// services are never reached: the guards answer first
	r := NewRouter(Handlers{
		Auth:        handler.NewAuthHandler(nil),
		User:        handler.NewUserHandler(nil),
		Category:    handler.NewCategoryHandler(nil),
		Dress:       handler.NewDressHandler(nil),
		Measurement: handler.NewMeasurementHandler(nil),
		Upload:      handler.NewUploadHandler(nil),
		Health:      handler.NewHealthHandler(handler.HealthDeps{}),
	}, jwtMw, cfg).SetupRoutes()

	token, err := jwtService.GenerateAccessToken(customer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		bearer bool
		want   int
	}{
		{"health is public", http.MethodGet, "/health", false, http.StatusOK},
		{"category create needs auth", http.MethodPost, "/categories", false, http.StatusUnauthorized},
		{"category create needs admin", http.MethodPost, "/categories", true, http.StatusForbidden},
		{"dress delete needs admin", http.MethodDelete, "/dresses/1", true, http.StatusForbidden},
		{"variant add needs admin", http.MethodPost, "/dresses/1/variants", true, http.StatusForbidden},
		{"upload needs admin", http.MethodPost, "/upload/dress-image", true, http.StatusForbidden},
		{"staff creation needs admin", http.MethodPost, "/users/employees", true, http.StatusForbidden},
		{"me needs auth", http.MethodGet, "/users/me", false, http.StatusUnauthorized},
		{"profile needs auth", http.MethodGet, "/customers/3/profile", false, http.StatusUnauthorized},
		{"logout needs auth", http.MethodPost, "/auth/logout", false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.bearer {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
