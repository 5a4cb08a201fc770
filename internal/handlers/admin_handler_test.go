package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	router, testDB := setupRouter(t)
	seedFixtures(t, testDB)

	// anonymous
	tc := newTestClient(t, router)
	rec := tc.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// student
	tc.login("student@example.com")
	rec = tc.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateUpdateDeleteItem(t *testing.T) {
	router, testDB := setupRouter(t)
	canteen, category, _ := seedFixtures(t, testDB)
	tc := newTestClient(t, router)
	tc.login("admin@example.com")

	rec := tc.do(http.MethodPost, "/api/admin/items", gin.H{
		"name":        "Biryani",
		"description": "Spiced rice dish with vegetables",
		"price":       90,
		"category_id": category.ID,
		"canteen_id":  canteen.ID,
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["item"].(map[string]interface{})
	id := uint(created["id"].(float64))
	assert.Equal(t, true, created["available"])

	rec = tc.do(http.MethodPut, fmt.Sprintf("/api/admin/items/%d", id), gin.H{
		"name":        "Veg Biryani",
		"price":       95,
		"category_id": category.ID,
		"canteen_id":  canteen.ID,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody(t, rec)["item"].(map[string]interface{})
	assert.Equal(t, "Veg Biryani", updated["name"])
	assert.Equal(t, 95.0, updated["price"])

	rec = tc.do(http.MethodDelete, fmt.Sprintf("/api/admin/items/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = tc.do(http.MethodDelete, fmt.Sprintf("/api/admin/items/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminCreateItemRejectsNegativePrice(t *testing.T) {
	router, testDB := setupRouter(t)
	canteen, category, _ := seedFixtures(t, testDB)
	tc := newTestClient(t, router)
	tc.login("admin@example.com")

	rec := tc.do(http.MethodPost, "/api/admin/items", gin.H{
		"name":        "Freebie",
		"price":       -5,
		"category_id": category.ID,
		"canteen_id":  canteen.ID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminToggleAvailability(t *testing.T) {
	router, testDB := setupRouter(t)
	_, _, item := seedFixtures(t, testDB)
	tc := newTestClient(t, router)
	tc.login("admin@example.com")

	rec := tc.do(http.MethodPost, fmt.Sprintf("/api/admin/items/%d/toggle", item.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	toggled := decodeBody(t, rec)["item"].(map[string]interface{})
	assert.Equal(t, false, toggled["available"])

	rec = tc.do(http.MethodPost, "/api/admin/items/999/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	router, testDB := setupRouter(t)
	canteen, _, item := seedFixtures(t, testDB)

	student := newTestClient(t, router)
	student.login("student@example.com")
	student.do(http.MethodPost, "/api/cart/items", gin.H{"item_id": item.ID})
	rec := student.do(http.MethodPost, "/api/cart/checkout", gin.H{"canteen_id": canteen.ID})
	assert.Equal(t, http.StatusCreated, rec.Code)
	placed := decodeBody(t, rec)["order"].(map[string]interface{})
	orderID := placed["id"].(string)

	admin := newTestClient(t, router)
	admin.login("admin@example.com")

	rec = admin.do(http.MethodPatch, fmt.Sprintf("/api/admin/orders/%s/status", orderID), gin.H{"status": "ready"})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody(t, rec)["order"].(map[string]interface{})
	assert.Equal(t, "ready", updated["status"])
	assert.Equal(t, placed["total_amount"], updated["total_amount"])

	rec = admin.do(http.MethodPatch, fmt.Sprintf("/api/admin/orders/%s/status", orderID), gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = admin.do(http.MethodPatch, "/api/admin/orders/missing/status", gin.H{"status": "ready"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminStats(t *testing.T) {
	router, testDB := setupRouter(t)
	seedFixtures(t, testDB)
	tc := newTestClient(t, router)
	tc.login("admin@example.com")

	rec := tc.do(http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	perCanteen := body["items_per_canteen"].([]interface{})
	assert.Len(t, perCanteen, 1)
	entry := perCanteen[0].(map[string]interface{})
	assert.Equal(t, "The Hungry Scholar", entry["canteen"])
	assert.Equal(t, 1.0, entry["items"])
}
