package control

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vietddude/appstore/internal/category"
	"github.com/vietddude/appstore/internal/core/config"
)

func newOperationServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "Internet", "icon": []string{"net.svg"}, "show": true, "apps": []string{"firefox"}},
		})
	}))
}

func testConfig(operationServer string) Config {
	return Config{
		Port: 0, // Random port
		Environment: config.EnvironmentConfig{
			MetadataServer:  "http://meta.example",
			OperationServer: operationServer,
		},
		Settings: config.SettingsConfig{Region: "global", ThemeName: "light"},
		Category: config.CategoryConfig{
			ThrottleWindow: time.Minute,
			RequestTimeout: time.Second,
		},
	}
}

func TestApp_Lifecycle(t *testing.T) {
	var hits int32
	ops := newOperationServer(t, &hits)
	defer ops.Close()

	app, err := NewApp(testConfig(ops.URL))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Wait for warm-up to fill the cache
	deadline := time.Now().Add(2 * time.Second)
	for app.Provider().State() != category.CellResolved && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if app.Provider().State() != category.CellResolved {
		t.Fatalf("expected resolved cache, got %s", app.Provider().State())
	}

	got := app.Provider().GetCategories(ctx)
	if len(got) != 1 || got[0].Title != "Internet" {
		t.Errorf("unexpected categories: %+v", got)
	}
	if got[0].Icon[0] != ops.URL+"/images/net.svg" {
		t.Errorf("unexpected icon url: %s", got[0].Icon[0])
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Errorf("expected 1 upstream request, got %d", n)
	}

	if err := app.Stop(ctx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestApp_StartFailsOnOccupiedPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("Failed to occupy port: %v", err)
	}
	defer ln.Close()

	cfg := testConfig("http://ops.example")
	cfg.Port = ln.Addr().(*net.TCPAddr).Port

	app, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	if err := app.Start(context.Background()); err == nil {
		_ = app.Stop(context.Background())
		t.Fatal("expected Start to fail on an occupied port")
	}
}

func TestApp_ServesOnBoundAddr(t *testing.T) {
	var hits int32
	ops := newOperationServer(t, &hits)
	defer ops.Close()

	app, err := NewApp(testConfig(ops.URL))
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() {
		_ = app.Stop(ctx)
	}()

	_, port, err := net.SplitHostPort(app.Addr())
	if err != nil {
		t.Fatalf("unexpected addr %q: %v", app.Addr(), err)
	}

	resp, err := http.Get("http://127.0.0.1:" + port + "/api/servers")
	if err != nil {
		t.Fatalf("GET /api/servers failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	select {
	case err := <-app.Errors():
		t.Fatalf("unexpected app error: %v", err)
	default:
	}
}

func TestNewApp_RequiresOperationServer(t *testing.T) {
	if _, err := NewApp(testConfig("")); err == nil {
		t.Fatal("expected error without operation server")
	}
}

func TestServersFrom(t *testing.T) {
	cfg := testConfig("http://ops.example")
	cfg.Environment.Production = true
	cfg.Settings.SupportSignIn = true

	servers := ServersFrom(cfg)
	if servers.OperationServer != "http://ops.example" || servers.MetadataServer != "http://meta.example" {
		t.Errorf("unexpected servers: %+v", servers)
	}
	if !servers.Production || !servers.SupportSignIn {
		t.Errorf("expected flags to carry over: %+v", servers)
	}
	if servers.Region != "global" || servers.ThemeName != "light" {
		t.Errorf("unexpected settings: %+v", servers)
	}
}
