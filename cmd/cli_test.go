package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/container-portal-cli/internal/adapters/gateway/appsscript"
	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/bnema/container-portal-cli/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const davidClientData = `{"clientName":"דוד","orders":[{"orderId":1,"type":"הצבה","status":"פתוח","address":"רחוב א׳","createdAt":"2026-03-01"}]}`

type portalRequest struct {
	Method string
	Action string
	Params map[string]string
}

// fakePortal stands in for the portal web app: known client ids get data, writes succeed.
type fakePortal struct {
	mu       sync.Mutex
	clients  map[string]string
	requests []portalRequest
}

func newFakePortal(t *testing.T) *fakePortal {
	t.Helper()

	portal := &fakePortal{clients: map[string]string{"123": davidClientData}}
	server := httptest.NewServer(http.HandlerFunc(portal.serveHTTP))
	t.Cleanup(server.Close)

	t.Setenv("PORTAL_API_ENDPOINT", server.URL+"/exec")
	t.Setenv("PORTAL_CLIENT_ID", "")
	t.Setenv("PORTAL_SESSION_BACKEND", "")
	t.Setenv("PORTAL_SESSION_PATH", "")
	t.Setenv("PORTAL_LOG_LEVEL", "")

	return portal
}

func (p *fakePortal) serveHTTP(w http.ResponseWriter, r *http.Request) {
	params := map[string]string{}
	switch r.Method {
	case http.MethodGet:
		for key := range r.URL.Query() {
			params[key] = r.URL.Query().Get(key)
		}
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	p.mu.Lock()
	p.requests = append(p.requests, portalRequest{Method: r.Method, Action: params["action"], Params: params})
	payload, known := p.clients[params["clientId"]]
	p.mu.Unlock()

	switch domain.Action(params["action"]) {
	case domain.ActionGetClientData:
		if !known {
			_, _ = w.Write([]byte(`{"error":"לקוח לא נמצא"}`))
			return
		}
		_, _ = w.Write([]byte(payload))
	default:
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}
}

func (p *fakePortal) requestsFor(action domain.Action) []portalRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	var matched []portalRequest
	for _, request := range p.requests {
		if request.Action == string(action) {
			matched = append(matched, request)
		}
	}
	return matched
}

func TestLoginWithClientIDShowsHomeAndStoresSession(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "login", "123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as דוד (123)")
	assert.Contains(t, stdout, "Order #1")

	loads := portal.requestsFor(domain.ActionGetClientData)
	require.Len(t, loads, 1)
	assert.Equal(t, http.MethodGet, loads[0].Method)
	assert.Equal(t, "123", loads[0].Params["clientId"])

	_, err = os.Stat(filepath.Join(home, ".portal", "session.toml"))
	assert.NoError(t, err)
}

func TestShowUsesStoredSession(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	_, _, err := executeCLI(t, home, "login", "--client-id", "123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "show", "order", "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1) רחוב א׳")
	assert.NotContains(t, stdout, "2)")
	assert.Contains(t, stdout, "1.3.2026")
	assert.Len(t, portal.requestsFor(domain.ActionGetClientData), 2)
}

func TestShowPromptsWhenNoSessionStored(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	stdout, _, err := executeCLIWithInput(t, home, "123\n", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Client ID: ")
	assert.Contains(t, stdout, "Hello, דוד")
}

func TestShowRepromptsAfterUnknownClient(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLIWithInput(t, home, "123\n", "show", "--client-id", "999")
	require.NoError(t, err)
	assert.Contains(t, stdout, "לקוח לא נמצא")
	assert.Contains(t, stdout, "Hello, דוד")

	loads := portal.requestsFor(domain.ActionGetClientData)
	require.Len(t, loads, 2)
	assert.Equal(t, "999", loads[0].Params["clientId"])
	assert.Equal(t, "123", loads[1].Params["clientId"])
}

func TestShowFailsWhenPromptDeclined(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "show")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSessionDeclined)
}

func TestFailedLoadClearsStoredSession(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	_, _, err := executeCLI(t, home, "login", "123")
	require.NoError(t, err)

	portal.mu.Lock()
	delete(portal.clients, "123")
	portal.mu.Unlock()

	_, _, err = executeCLI(t, home, "show")
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(home, ".portal", "session.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShowJSONOutput(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "show", "--json", "--client-id", "123")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))

	var decoded snapshotOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, "123", decoded.ClientID)
	assert.Equal(t, "דוד", decoded.ClientName)
	assert.Equal(t, []string{"רחוב א׳"}, decoded.Addresses)
	require.Len(t, decoded.ActiveOrders, 1)
	assert.Equal(t, "1", decoded.ActiveOrders[0].OrderID)
	assert.Equal(t, domain.DefaultChatTemplates, decoded.ChatTemplates)
}

func TestShowRejectsUnknownScreen(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "show", "settings", "--client-id", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument \"settings\"")
}

func TestOrderSubmitsAndRefreshesOnce(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "order", "--client-id", "123", "--type", "פינוי", "--address", "רחוב ב׳", "--notes", "ליד השער")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Order submitted.")
	assert.Contains(t, stdout, "Hello, דוד")

	orders := portal.requestsFor(domain.ActionCreateNewOrder)
	require.Len(t, orders, 1)
	assert.Equal(t, http.MethodPost, orders[0].Method)
	assert.Equal(t, map[string]string{
		"action":     "createNewOrder",
		"clientId":   "123",
		"clientName": "דוד",
		"type":       "פינוי",
		"address":    "רחוב ב׳",
		"notes":      "ליד השער",
	}, orders[0].Params)

	loads := portal.requestsFor(domain.ActionGetClientData)
	require.Len(t, loads, 2)
	assert.Equal(t, "123", loads[1].Params["clientId"])
}

func TestOrderBySelectedAddress(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	_, _, err := executeCLI(t, home, "order", "--client-id", "123", "--type", "החלפה", "--select", "1")
	require.NoError(t, err)

	orders := portal.requestsFor(domain.ActionCreateNewOrder)
	require.Len(t, orders, 1)
	assert.Equal(t, "רחוב א׳", orders[0].Params["address"])
}

func TestOrderWithoutAddressIsRejectedLocally(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	for _, args := range [][]string{
		{"order", "--client-id", "123", "--type", "פינוי"},
		{"order", "--client-id", "123", "--type", "פינוי", "--select", "0"},
	} {
		_, _, err := executeCLI(t, home, args...)
		require.Error(t, err)

		var validationErr *domain.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}

	assert.Empty(t, portal.requestsFor(domain.ActionCreateNewOrder))
}

func TestOrderSelectOutOfRange(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "order", "--client-id", "123", "--type", "פינוי", "--select", "4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address 4 is not in your list (1-1)")
}

func TestOrderUsesConfiguredClientRequestAction(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	t.Setenv("PORTAL_API_ORDER_ACTION", "clientRequest")

	_, _, err := executeCLI(t, home, "order", "--client-id", "123", "--type", "הצבה", "--address", "רחוב ג׳")
	require.NoError(t, err)

	requests := portal.requestsFor(domain.ActionClientRequest)
	require.Len(t, requests, 1)
	assert.Equal(t, "הצבה", requests[0].Params["requestType"])
	assert.Empty(t, portal.requestsFor(domain.ActionCreateNewOrder))
}

func TestChatSendBlankIsSilent(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "chat", "send", "--client-id", "123", "   ")
	require.NoError(t, err)
	assert.NotContains(t, stdout, "Message sent.")
	assert.Empty(t, portal.requestsFor(domain.ActionSendChatMessage))
}

func TestChatSendMessage(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "chat", "send", "--client-id", "123", "מתי", "מגיעים?")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Message sent.")
	assert.Contains(t, stdout, "Quick messages:")

	messages := portal.requestsFor(domain.ActionSendChatMessage)
	require.Len(t, messages, 1)
	assert.Equal(t, "מתי מגיעים?", messages[0].Params["message"])
	assert.Len(t, portal.requestsFor(domain.ActionGetClientData), 1)
}

func TestChatTemplateByNumber(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	_, _, err := executeCLI(t, home, "chat", "template", "--client-id", "123", "3")
	require.NoError(t, err)

	messages := portal.requestsFor(domain.ActionSendChatMessage)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.DefaultChatTemplates[2], messages[0].Params["message"])

	_, _, err = executeCLI(t, home, "chat", "template", "--client-id", "123", "x")
	assert.ErrorContains(t, err, "invalid template number")
}

func TestChatTemplatesListsCatalog(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "chat", "templates", "--client-id", "123")
	require.NoError(t, err)
	for _, template := range domain.DefaultChatTemplates {
		assert.Contains(t, stdout, template)
	}
}

func TestLogoutForgetsSession(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "login", "123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out.")

	_, err = os.Stat(filepath.Join(home, ".portal", "session.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBoltSessionBackend(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)
	t.Setenv("PORTAL_SESSION_BACKEND", "bolt")

	_, _, err := executeCLI(t, home, "login", "123")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, ".portal", "session.db"))
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Hello, דוד")
	assert.Len(t, portal.requestsFor(domain.ActionGetClientData), 2)
}

func TestWatchStopsAfterMaxRefreshes(t *testing.T) {
	home := t.TempDir()
	portal := newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "watch", "--client-id", "123", "--interval", "10ms", "--max-refreshes", "2")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(stdout, "Hello, דוד"))
	assert.Len(t, portal.requestsFor(domain.ActionGetClientData), 3)
}

func TestWatchRejectsNonPositiveInterval(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "watch", "--client-id", "123", "--interval", "0s")
	assert.ErrorContains(t, err, "interval must be positive")
}

func TestMetricsEndpointServesGatewayAndWatchSeries(t *testing.T) {
	newFakePortal(t)

	registry := prometheus.NewRegistry()
	metrics, err := appsscript.NewMetrics(registry)
	require.NoError(t, err)
	refreshes, err := newRefreshCounter(registry)
	require.NoError(t, err)

	client, err := appsscript.NewClient(appsscript.Config{
		Endpoint: os.Getenv("PORTAL_API_ENDPOINT"),
		Timeout:  time.Second,
	}, appsscript.WithMetrics(metrics))
	require.NoError(t, err)
	_, err = client.Request(context.Background(), domain.ActionGetClientData, map[string]string{"clientId": "123"})
	require.NoError(t, err)
	refreshes.WithLabelValues("ok").Inc()

	cmd := &cobra.Command{}
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)
	addr, stop, err := serveMetrics(cmd, registry, "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(stop)
	assert.Contains(t, stderr.String(), "metrics on http://"+addr+"/metrics")

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `portal_gateway_requests_total{action="getClientData",outcome="ok"} 1`)
	assert.Contains(t, string(body), `portal_gateway_request_duration_seconds_count{action="getClientData"} 1`)
	assert.Contains(t, string(body), `portal_watch_refreshes_total{outcome="ok"} 1`)
}

func TestWatchServesMetricsOnRequestedAddress(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, stderr, err := executeCLI(t, home, "watch", "--client-id", "123", "--interval", "10ms", "--max-refreshes", "1", "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, stderr, "metrics on http://127.0.0.1:")
}

func TestLogLevelFlagDoesNotChangeGlobalLevel(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)
	before := zerolog.GlobalLevel()

	_, stderr, err := executeCLI(t, home, "show", "--client-id", "123", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, stderr, "snapshot replaced")
	assert.Equal(t, before, zerolog.GlobalLevel())

	_, stderr, err = executeCLI(t, home, "show", "--client-id", "123")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "snapshot replaced")
}

func TestInvalidLogLevel(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	_, _, err := executeCLI(t, home, "version", "--log-level", "loud")
	assert.ErrorContains(t, err, "parse log level")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestInvalidConfigIsReported(t *testing.T) {
	home := t.TempDir()
	newFakePortal(t)
	t.Setenv("PORTAL_API_ENDPOINT", "ftp://example.com")

	_, _, err := executeCLI(t, home, "version")
	assert.ErrorContains(t, err, "load config")
}

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, "", args...)
}

func executeCLIWithInput(t *testing.T, home, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetIn(strings.NewReader(input))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
