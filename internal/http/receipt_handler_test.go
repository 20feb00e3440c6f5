package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnendude2005/vibe-cart-demo/internal/domain"
	"github.com/krishnendude2005/vibe-cart-demo/internal/receipt"
)

func TestReceipt_WithoutHandoffRedirectsToRoot(t *testing.T) {
	handler := NewReceiptHandler(receipt.NewHandoff())

	recorder := httptest.NewRecorder()
	request := withSession(httptest.NewRequest("GET", "/api/v1/receipt", nil))

	handler.Show(recorder, request)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}

func TestReceipt_ShowsHandedOffOrderOnce(t *testing.T) {
	handoff := receipt.NewHandoff()
	handoff.Put(testSession, &domain.Order{
		ID:        "o1",
		Name:      "A",
		Email:     "a@b.com",
		Total:     20.00,
		Items:     []domain.OrderItem{{ProductID: "p1", Name: "Widget", Price: 10.00, Quantity: 2}},
		CreatedAt: time.Now(),
	})
	handler := NewReceiptHandler(handoff)

	recorder := httptest.NewRecorder()
	handler.Show(recorder, withSession(httptest.NewRequest("GET", "/api/v1/receipt", nil)))

	require.Equal(t, http.StatusOK, recorder.Code)

	var view receipt.View
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&view))
	assert.Equal(t, "o1", view.Order.ID)
	assert.NotEmpty(t, view.FormattedDate)
	require.Len(t, view.Order.Items, 1)
	assert.Equal(t, "Widget", view.Order.Items[0].Name)

	// A reload loses the receipt and lands back on the catalog root.
	recorder = httptest.NewRecorder()
	handler.Show(recorder, withSession(httptest.NewRequest("GET", "/api/v1/receipt", nil)))
	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}
