package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ommangate/order-up-scholars/internal/auth"
	"github.com/ommangate/order-up-scholars/internal/cart"
	"github.com/ommangate/order-up-scholars/internal/catalog"
	"github.com/ommangate/order-up-scholars/internal/db"
	"github.com/ommangate/order-up-scholars/internal/handlers"
	"github.com/ommangate/order-up-scholars/internal/latency"
	"github.com/ommangate/order-up-scholars/internal/models"
	"github.com/ommangate/order-up-scholars/internal/order"
)

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	delay := latency.New(0, 0)
	catalogSvc := catalog.NewService(testDB, delay)
	orderSvc := order.NewService(testDB, delay, nil)
	carts := cart.NewRegistry(orderSvc)

	authH := auth.NewHandler(testDB, delay)
	authH.DropCart = carts.Drop
	catalogH := handlers.NewCatalogHandler(catalogSvc)
	cartH := handlers.NewCartHandler(carts, catalogSvc)
	orderH := handlers.NewOrderHandler(orderSvc)
	adminH := handlers.NewAdminHandler(catalogSvc, orderSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions(auth.SessionName, cookie.NewStore([]byte("test-secret-key"))))

	r.POST("/auth/login", authH.Login)
	r.POST("/auth/logout", authH.Logout)
	r.GET("/auth/me", auth.RequireAuth(testDB), authH.Me)

	api := r.Group("/api")
	{
		api.GET("/canteens", catalogH.ListCanteens)
		api.GET("/categories", catalogH.ListCategories)
		api.GET("/items", catalogH.ListItems)

		api.GET("/cart", cartH.GetCart)
		api.POST("/cart/items", cartH.AddItem)
		api.PATCH("/cart/items/:id", cartH.UpdateLine)
		api.DELETE("/cart/items/:id", cartH.RemoveLine)
		api.POST("/cart/clear", cartH.Clear)
		api.POST("/cart/checkout", auth.RequireAuth(testDB), cartH.Checkout)

		api.GET("/orders", auth.RequireAuth(testDB), orderH.ListOrders)
		api.GET("/orders/:id", auth.RequireAuth(testDB), orderH.GetOrder)
	}

	admin := r.Group("/api/admin")
	admin.Use(auth.RequireAuth(testDB), auth.RequireAdmin())
	{
		admin.POST("/items", adminH.CreateItem)
		admin.PUT("/items/:id", adminH.UpdateItem)
		admin.DELETE("/items/:id", adminH.DeleteItem)
		admin.POST("/items/:id/toggle", adminH.ToggleAvailability)
		admin.PATCH("/orders/:id/status", adminH.UpdateOrderStatus)
		admin.GET("/stats", adminH.Stats)
	}

	return r, testDB
}

func seedFixtures(t *testing.T, testDB *gorm.DB) (canteen models.Canteen, category models.FoodCategory, item models.FoodItem) {
	t.Helper()

	canteen = models.Canteen{Name: "The Hungry Scholar", Location: "IT Building"}
	assert.NoError(t, testDB.Create(&canteen).Error)
	category = models.FoodCategory{Name: "Breakfast"}
	assert.NoError(t, testDB.Create(&category).Error)
	item = models.FoodItem{
		Name: "Poha", Price: 30, CategoryID: category.ID, CanteenID: canteen.ID, Available: true,
	}
	assert.NoError(t, testDB.Create(&item).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	assert.NoError(t, err)
	users := []models.User{
		{Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, PasswordHash: string(hash)},
		{Name: "Student User", Email: "student@example.com", Phone: "9876543210", Role: models.RoleStudent, PasswordHash: string(hash)},
	}
	assert.NoError(t, testDB.Create(&users).Error)
	return canteen, category, item
}

// testClient drives the router while carrying the session cookie across
// requests, like a browser would.
type testClient struct {
	t      *testing.T
	router *gin.Engine
	cookie string
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	return &testClient{t: t, router: router}
}

func (tc *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	tc.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			tc.t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tc.cookie != "" {
		req.Header.Set("Cookie", tc.cookie)
	}

	rec := httptest.NewRecorder()
	tc.router.ServeHTTP(rec, req)

	if sc := rec.Header().Get("Set-Cookie"); sc != "" {
		tc.cookie = sc
	}
	return rec
}

func (tc *testClient) login(email string) {
	tc.t.Helper()
	rec := tc.do(http.MethodPost, "/auth/login", gin.H{"email": email, "password": "password"})
	assert.Equal(tc.t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
