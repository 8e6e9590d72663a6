package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/pbx-dashboard/internal/handlers"
	"github.com/GregMSThompson/pbx-dashboard/internal/middleware"
	"github.com/GregMSThompson/pbx-dashboard/internal/response"
	"github.com/GregMSThompson/pbx-dashboard/internal/services"
	"github.com/GregMSThompson/pbx-dashboard/internal/store"
	"github.com/GregMSThompson/pbx-dashboard/pkg/logger"
)

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Changed   bool `json:"changed"`
		Dashboard struct {
			Widgets []struct {
				ID    string `json:"id"`
				Order int    `json:"order"`
			} `json:"widgets"`
		} `json:"dashboard"`
		Widgets []struct {
			ID string `json:"id"`
		} `json:"widgets"`
	} `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		DashboardSvc:    services.NewDashboardService(store.NewMemoryStore()),
	}
	srv := httptest.NewServer(NewRouter(deps, middleware.StaticUID("uid1")))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rdr)
	if err != nil {
		t.Fatal(err)
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(res.Body)
	_ = json.Unmarshal(raw, &env)
	return res.StatusCode, env
}

func TestDashboardFlow(t *testing.T) {
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/dashboard/widgets/revenueChart", "")
	if status != http.StatusOK || !env.Success || !env.Data.Changed {
		t.Fatalf("add failed: %d %+v", status, env)
	}

	status, env = do(t, srv, http.MethodPut, "/dashboard/widgets/reorder", `{"activeId":"revenueChart","overId":"kpiCards"}`)
	if status != http.StatusOK || len(env.Data.Dashboard.Widgets) == 0 {
		t.Fatalf("reorder failed: %d %+v", status, env)
	}
	if first := env.Data.Dashboard.Widgets[0]; first.ID != "revenueChart" || first.Order != 1 {
		t.Fatalf("expected revenueChart first, got %+v", first)
	}

	status, env = do(t, srv, http.MethodGet, "/dashboard/widgets/available?category=analytics", "")
	if status != http.StatusOK {
		t.Fatalf("available failed: %d", status)
	}
	for _, w := range env.Data.Widgets {
		if w.ID == "revenueChart" {
			t.Fatal("visible widget listed as available")
		}
	}
}

func TestValidationErrorsAre400(t *testing.T) {
	srv := newTestServer(t)

	status, _ := do(t, srv, http.MethodPost, "/dashboard/layout", `{}`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	status, _ = do(t, srv, http.MethodPut, "/dashboard/widgets/reorder", `{`)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	res, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("unexpected metrics response: %d", res.StatusCode)
	}
}
