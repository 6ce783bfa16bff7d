package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fleet-scheduler/internal/domain"
	"fleet-scheduler/internal/http/handlers"
	"fleet-scheduler/internal/http/router"
	"fleet-scheduler/internal/logx"
	"fleet-scheduler/internal/scheduler"
	"fleet-scheduler/internal/service/scheduling"
)

func newTestRouter(t *testing.T, limited func(http.Handler) http.Handler) (http.Handler, *scheduling.Service) {
	t.Helper()

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	store := scheduler.NewStore(scheduler.Options{Now: func() time.Time { return day }})
	svc := scheduling.NewService(store, nil, time.Second, logx.Nop())

	require.NoError(t, svc.UpsertTrailer(context.Background(), domain.Trailer{
		ID: "trl-1",
		Compartments: []domain.Compartment{
			{ID: "c1", Capacity: decimal.NewFromInt(10000), ProductType: "diesel", PartialAllowed: true},
		},
	}))
	require.NoError(t, svc.UpsertVehicle(context.Background(), domain.Vehicle{
		ID:           "v-1",
		Name:         "Truck 1",
		Status:       domain.VehicleActive,
		TrailerID:    "trl-1",
		Availability: domain.Interval{Start: day.Add(6 * time.Hour), End: day.Add(18 * time.Hour)},
	}))

	h := router.New(router.Deps{
		Base:     handlers.New(logx.Nop()),
		Fleet:    handlers.NewFleetHandler(handlers.NewFleetUsecase(svc), logx.Nop()),
		Schedule: handlers.NewScheduleHandler(handlers.NewScheduleUsecase(svc), logx.Nop()),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		Limited: limited,
	})
	return h, svc
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_Probes(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/ping", "").Code)
	require.Equal(t, http.StatusNoContent, do(h, http.MethodHead, "/healthcheck", "").Code)
	require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics", "").Code)
	require.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/missing", "").Code)
}

func TestRouter_OrderToShipmentRoundTrip(t *testing.T) {
	t.Parallel()

	h, svc := newTestRouter(t, nil)

	rr := do(h, http.MethodPost, "/orders/unassigned", `{
		"order_ref": "ORD-1",
		"product_type": "diesel",
		"quantity": "6000",
		"priority": "high",
		"eta": {"start": "2025-03-10T06:00:00Z", "end": "2025-03-10T18:00:00Z"}
	}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	orders := svc.UnassignedOrders(context.Background())
	require.Len(t, orders, 1)

	rr = do(h, http.MethodPost, "/orders/unassigned/"+orders[0].ID+"/schedule",
		`{"vehicle_id":"v-1","start":"2025-03-10T08:00:00Z","end":"2025-03-10T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), `"success":true`)

	shipments := svc.Shipments(context.Background())
	require.Len(t, shipments, 1)

	rr = do(h, http.MethodPost, "/shipments/"+shipments[0].ID+"/resize",
		`{"start":"2025-03-10T19:00:00Z","end":"2025-03-10T20:00:00Z"}`)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Contains(t, rr.Body.String(), `"reason":"outside_availability"`)

	rr = do(h, http.MethodDelete, "/shipments/"+shipments[0].ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Empty(t, svc.Shipments(context.Background()))
	require.Len(t, svc.UnassignedOrders(context.Background()), 1)

	rr = do(h, http.MethodGet, "/schedule/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"unassigned":1`)
}

func TestRouter_AutoAllocateWithoutBody(t *testing.T) {
	t.Parallel()

	h, svc := newTestRouter(t, nil)
	ctx := context.Background()

	o, err := svc.AddOrder(ctx, domain.UnassignedOrder{
		OrderRef:    "ORD-1",
		ProductType: "diesel",
		Quantity:    decimal.NewFromInt(4000),
		Priority:    domain.PriorityMedium,
		ETA: domain.Interval{
			Start: time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC),
		},
	})
	require.NoError(t, err)
	res, err := svc.CreateFromUnassigned(ctx, o.ID, "v-1", domain.Interval{
		Start: time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.True(t, res.Success, res.Error)

	rr := do(h, http.MethodPost, "/shipments/"+res.ShipmentID+"/auto-allocate", "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Contains(t, rr.Body.String(), `"vehicle_id":"v-1"`)
	require.Contains(t, rr.Body.String(), `"committed":true`)

	rr = do(h, http.MethodPost, "/shipments/missing/auto-allocate", "")
	require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())
}

func TestRouter_LimitedAppliesToAPIOnly(t *testing.T) {
	t.Parallel()

	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	h, _ := newTestRouter(t, deny)

	require.Equal(t, http.StatusTooManyRequests, do(h, http.MethodGet, "/shipments", "").Code)
	require.Equal(t, http.StatusOK, do(h, http.MethodGet, "/ping", "").Code)
}
