package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/parts-replenishment/internal/schema/schematest"
	"github.com/tair/parts-replenishment/kafka"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type client struct {
	t      *testing.T
	router http.Handler
}

func (c client) call(method, path, body string, wantStatus int, out interface{}) envelope {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	require.Equal(c.t, wantStatus, rec.Code, "%s %s: %s", method, path, rec.Body.String())

	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	if out != nil {
		require.NoError(c.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func newClient(t *testing.T) (client, *kafka.MemoryPublisher) {
	db := schematest.NewDB(t)
	events := &kafka.MemoryPublisher{}
	application, err := InitializeApp(db, events)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	router := mux.NewRouter()
	application.RegisterRoutes(router)
	RegisterHealthCheck(router, sqlDB)
	return client{t: t, router: router}, events
}

func TestReplenishmentCycleOverHTTP(t *testing.T) {
	c, events := newClient(t)

	c.call("GET", "/health", "", http.StatusOK, nil)

	var vendor struct{ ID uint }
	c.call("POST", "/api/vendors", `{"code":"V","name":"Vendor V"}`, http.StatusCreated, &vendor)

	var created struct {
		Part struct{ ID uint } `json:"part"`
	}
	c.call("POST", "/api/parts", fmt.Sprintf(
		`{"part_number":"P","name":"Widget","unit_price":"2.00","vendor_id":%d,"initial_quantity":15,"reorder_point":10,"reorder_quantity":20}`,
		vendor.ID), http.StatusCreated, &created)
	partID := created.Part.ID

	var shipped struct {
		Inventory struct {
			QuantityOnHand int `json:"quantity_on_hand"`
		} `json:"inventory"`
	}
	c.call("POST", fmt.Sprintf("/api/inventory/%d/ship", partID), `{"quantity":10}`, http.StatusOK, &shipped)
	assert.Equal(t, 5, shipped.Inventory.QuantityOnHand)

	env := c.call("POST", fmt.Sprintf("/api/inventory/%d/ship", partID), `{"quantity":6}`, http.StatusBadRequest, nil)
	assert.Contains(t, env.Error, "insufficient inventory")

	var check struct {
		AlertsCreated int `json:"alerts_created"`
		Alerts        []struct {
			ID uint `json:"id"`
		} `json:"alerts"`
	}
	c.call("POST", "/api/reorder/check", "", http.StatusOK, &check)
	require.Equal(t, 1, check.AlertsCreated)
	c.call("POST", "/api/reorder/check", "", http.StatusOK, &check)
	assert.Zero(t, check.AlertsCreated)

	var processed struct {
		Order struct {
			ID     uint            `json:"id"`
			Status string          `json:"status"`
			Total  decimal.Decimal `json:"total"`
		} `json:"order"`
	}
	c.call("POST", fmt.Sprintf("/api/reorder/alerts/%d/process", 1), "", http.StatusOK, &processed)
	assert.Equal(t, "PENDING", processed.Order.Status)
	assert.True(t, processed.Order.Total.Equal(decimal.RequireFromString("40.00")), processed.Order.Total.String())

	c.call("POST", "/api/reorder/alerts/1/process", "", http.StatusConflict, nil)
	c.call("DELETE", fmt.Sprintf("/api/orders/%d", processed.Order.ID), "", http.StatusConflict, nil)
	c.call("PATCH", fmt.Sprintf("/api/orders/%d/status", processed.Order.ID), `{"status":"RECEIVED"}`, http.StatusConflict, nil)

	for _, status := range []string{"APPROVED", "ORDERED", "SHIPPED", "RECEIVED"} {
		c.call("PATCH", fmt.Sprintf("/api/orders/%d/status", processed.Order.ID),
			fmt.Sprintf(`{"status":%q,"tracking_number":"TRK-1"}`, status), http.StatusOK, nil)
	}

	var inv struct {
		QuantityOnHand int `json:"quantity_on_hand"`
	}
	c.call("GET", fmt.Sprintf("/api/inventory/%d", partID), "", http.StatusOK, &inv)
	assert.Equal(t, 25, inv.QuantityOnHand)

	var detail struct {
		TrackingNumber string `json:"tracking_number"`
		InventoryLogs  []struct {
			ChangeType string `json:"change_type"`
			Reason     string `json:"reason"`
		} `json:"inventory_logs"`
	}
	c.call("GET", fmt.Sprintf("/api/orders/%d", processed.Order.ID), "", http.StatusOK, &detail)
	assert.Equal(t, "TRK-1", detail.TrackingNumber)
	require.Len(t, detail.InventoryLogs, 1)
	assert.Equal(t, "RECEIVE", detail.InventoryLogs[0].ChangeType)
	assert.Contains(t, detail.InventoryLogs[0].Reason, "Received from order PO")

	var pending struct {
		Count int `json:"count"`
	}
	c.call("GET", "/api/reorder/alerts/pending", "", http.StatusOK, &pending)
	assert.Zero(t, pending.Count)

	// one alert event, four transitions, one receipt
	assert.Len(t, events.Events(), 6)
}

func TestErrorMapping(t *testing.T) {
	c, _ := newClient(t)

	c.call("GET", "/api/inventory/42", "", http.StatusNotFound, nil)
	c.call("POST", "/api/inventory/42/adjust", `{"quantity":1,"reason":"found"}`, http.StatusNotFound, nil)
	c.call("POST", "/api/inventory/42/adjust", `{bad`, http.StatusBadRequest, nil)
	c.call("PATCH", "/api/orders/42/status", `{"status":"PENDING"}`, http.StatusNotFound, nil)
	c.call("PATCH", "/api/orders/42/status", `{"status":"LOST"}`, http.StatusBadRequest, nil)
	c.call("POST", "/api/reorder/alerts/42/dismiss", "", http.StatusNotFound, nil)
	c.call("GET", "/api/reorder/alerts?status=SNOOZED", "", http.StatusBadRequest, nil)

	var result struct {
		Count int `json:"count"`
	}
	c.call("POST", "/api/reorder/create-orders", "", http.StatusCreated, &result)
	assert.Zero(t, result.Count)
}

func TestInitializeAppWiresEveryModule(t *testing.T) {
	application, err := InitializeApp(schematest.NewDB(t), kafka.NopPublisher{})
	require.NoError(t, err)

	assert.NotNil(t, application.Catalog)
	assert.NotNil(t, application.Inventory)
	assert.NotNil(t, application.Orders)
	assert.NotNil(t, application.Reorder)
	assert.NotNil(t, application.Ledger)
	assert.NotNil(t, application.Scanner)
}
