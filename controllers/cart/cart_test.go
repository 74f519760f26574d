package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emonpappu17/mediBazaar-server-ass/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	// A single connection keeps the in-memory database alive and serializes
	// statement execution.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Cart{}, &models.CartLine{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func asUser(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_email", email)
		c.Set("user_role", "user")
		c.Next()
	}
}

func newCartRouter(db *gorm.DB, email string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/cart", asUser(email), AddCartItem(db))
	r.GET("/cart", asUser(email), GetUserCart(db))
	r.PATCH("/cart", asUser(email), UpdateCartQuantity(db))
	r.DELETE("/cart/:medicine_id", asUser(email), DeleteCartItem(db))
	r.DELETE("/cart", asUser(email), ClearUserCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type cartResponse struct {
	Items         []models.CartLine `json:"items"`
	TotalPrice    float64           `json:"total_price"`
	TotalQuantity int               `json:"total_quantity"`
}

func getCart(t *testing.T, r *gin.Engine) cartResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/cart", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /cart returned %d: %s", w.Code, w.Body.String())
	}
	var resp cartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode cart response: %v", err)
	}
	return resp
}

func addItem(medicineID uint, price, discount float64, qty int) map[string]interface{} {
	return map[string]interface{}{
		"medicine_id":      medicineID,
		"name":             fmt.Sprintf("Medicine %d", medicineID),
		"image":            "https://example.com/med.png",
		"unit_price":       price,
		"discount_percent": discount,
		"seller_email":     "seller@pharma.com",
		"quantity":         qty,
	}
}

func TestFinalUnitPrice(t *testing.T) {
	cases := []struct {
		price, discount, want float64
	}{
		{10.00, 10, 9.00},
		{10.00, 20, 8.00},
		{10.00, 0, 10.00},
		{19.99, 15, 16.99},
		{0, 50, 0},
	}
	for _, tc := range cases {
		if got := finalUnitPrice(tc.price, tc.discount); got != tc.want {
			t.Errorf("finalUnitPrice(%v, %v) = %v, want %v", tc.price, tc.discount, got, tc.want)
		}
	}
}

func TestMergeAccumulatesQuantityAndReprices(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "buyer@example.com")

	if w := doJSON(t, r, http.MethodPost, "/cart", addItem(1, 10.00, 10, 2)); w.Code != http.StatusCreated {
		t.Fatalf("first add returned %d: %s", w.Code, w.Body.String())
	}

	resp := getCart(t, r)
	if len(resp.Items) != 1 {
		t.Fatalf("after first add: expected 1 line, got %d", len(resp.Items))
	}
	if resp.Items[0].FinalUnitPrice != 9.00 || resp.TotalPrice != 18.00 {
		t.Fatalf("after first add: final=%v total=%v, want 9.00/18.00", resp.Items[0].FinalUnitPrice, resp.TotalPrice)
	}

	// Repeat add: quantity accumulates, pricing follows the latest request.
	if w := doJSON(t, r, http.MethodPost, "/cart", addItem(1, 10.00, 20, 1)); w.Code != http.StatusOK {
		t.Fatalf("second add returned %d: %s", w.Code, w.Body.String())
	}

	resp = getCart(t, r)
	if len(resp.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(resp.Items))
	}
	line := resp.Items[0]
	if line.Quantity != 3 {
		t.Errorf("quantity = %d, want 3", line.Quantity)
	}
	if line.FinalUnitPrice != 8.00 {
		t.Errorf("final unit price = %v, want 8.00", line.FinalUnitPrice)
	}
	if resp.TotalPrice != 24.00 {
		t.Errorf("total price = %v, want 24.00", resp.TotalPrice)
	}
	if resp.TotalQuantity != 3 {
		t.Errorf("total quantity = %d, want 3", resp.TotalQuantity)
	}
}

func TestTotalsMatchStoredLines(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "buyer@example.com")

	doJSON(t, r, http.MethodPost, "/cart", addItem(1, 12.50, 10, 3))
	doJSON(t, r, http.MethodPost, "/cart", addItem(2, 7.25, 0, 1))
	doJSON(t, r, http.MethodPost, "/cart", addItem(3, 99.99, 33, 2))

	resp := getCart(t, r)

	var lines []models.CartLine
	if err := db.Find(&lines).Error; err != nil {
		t.Fatalf("failed to read lines: %v", err)
	}
	var want float64
	var wantQty int
	for _, l := range lines {
		want += l.FinalUnitPrice * float64(l.Quantity)
		wantQty += l.Quantity
	}
	want = float64(int(want*100+0.5)) / 100

	if resp.TotalPrice != want {
		t.Errorf("total price = %v, recomputed %v", resp.TotalPrice, want)
	}
	if resp.TotalQuantity != wantQty {
		t.Errorf("total quantity = %d, recomputed %d", resp.TotalQuantity, wantQty)
	}
}

func TestReadAbsentCartReturnsEmpty(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "nobody@example.com")

	resp := getCart(t, r)
	if len(resp.Items) != 0 || resp.TotalPrice != 0 || resp.TotalQuantity != 0 {
		t.Errorf("absent cart: items=%d total=%v qty=%d, want all empty", len(resp.Items), resp.TotalPrice, resp.TotalQuantity)
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "buyer@example.com")

	doJSON(t, r, http.MethodPost, "/cart", addItem(1, 10.00, 0, 2))

	w := doJSON(t, r, http.MethodPatch, "/cart", map[string]interface{}{"medicine_id": 1, "quantity": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("patch returned %d: %s", w.Code, w.Body.String())
	}
	if resp := getCart(t, r); resp.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5 (overwrite, not add)", resp.Items[0].Quantity)
	}

	// Non-positive quantities are rejected.
	if w := doJSON(t, r, http.MethodPatch, "/cart", map[string]interface{}{"medicine_id": 1, "quantity": -1}); w.Code != http.StatusBadRequest {
		t.Errorf("negative quantity returned %d, want 400", w.Code)
	}

	// Unknown medicine in an existing cart.
	if w := doJSON(t, r, http.MethodPatch, "/cart", map[string]interface{}{"medicine_id": 99, "quantity": 2}); w.Code != http.StatusNotFound {
		t.Errorf("unknown item returned %d, want 404", w.Code)
	}

	// No cart at all.
	other := newCartRouter(db, "cartless@example.com")
	if w := doJSON(t, other, http.MethodPatch, "/cart", map[string]interface{}{"medicine_id": 1, "quantity": 2}); w.Code != http.StatusNotFound {
		t.Errorf("missing cart returned %d, want 404", w.Code)
	}
}

func TestRemoveAndClearAreIdempotent(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "buyer@example.com")

	// Removing from a cart that does not exist yet.
	if w := doJSON(t, r, http.MethodDelete, "/cart/42", nil); w.Code != http.StatusOK {
		t.Errorf("remove on absent cart returned %d, want 200", w.Code)
	}

	doJSON(t, r, http.MethodPost, "/cart", addItem(1, 10.00, 0, 1))

	if w := doJSON(t, r, http.MethodDelete, "/cart/1", nil); w.Code != http.StatusOK {
		t.Errorf("remove returned %d, want 200", w.Code)
	}
	// Removing the same line again is a no-op success.
	if w := doJSON(t, r, http.MethodDelete, "/cart/1", nil); w.Code != http.StatusOK {
		t.Errorf("repeat remove returned %d, want 200", w.Code)
	}

	if w := doJSON(t, r, http.MethodDelete, "/cart", nil); w.Code != http.StatusOK {
		t.Errorf("clear returned %d, want 200", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/cart", nil); w.Code != http.StatusOK {
		t.Errorf("repeat clear returned %d, want 200", w.Code)
	}
	if resp := getCart(t, r); len(resp.Items) != 0 {
		t.Errorf("cart not empty after clear: %d items", len(resp.Items))
	}
}

// Two concurrent merges for the same user must both survive; the per-user
// lock serializes the read-modify-write sequences.
func TestConcurrentMergesBothSurvive(t *testing.T) {
	db := setupTestDB(t)
	r := newCartRouter(db, "racer@example.com")

	var wg sync.WaitGroup
	for _, id := range []uint{1, 2} {
		wg.Add(1)
		go func(medicineID uint) {
			defer wg.Done()
			doJSON(t, r, http.MethodPost, "/cart", addItem(medicineID, 5.00, 0, 1))
		}(id)
	}
	wg.Wait()

	resp := getCart(t, r)
	if len(resp.Items) != 2 {
		t.Fatalf("expected both lines to survive, got %d", len(resp.Items))
	}
}
