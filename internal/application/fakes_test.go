package application

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
)

const sampleClientData = `{"clientName":"דוד","orders":[{"orderId":1,"type":"הצבה","status":"פתוח","address":"רחוב א׳"}]}`

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type gatewayCall struct {
	Action domain.Action
	Params map[string]string
}

// fakeGateway answers through respond and tracks how many requests overlap.
type fakeGateway struct {
	respond func(call int, action domain.Action, params map[string]string) (json.RawMessage, time.Duration, error)

	mu          sync.Mutex
	calls       []gatewayCall
	completed   []int
	inFlight    int
	maxInFlight int
}

func (g *fakeGateway) Request(ctx context.Context, action domain.Action, params map[string]string) (json.RawMessage, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gatewayCall{Action: action, Params: params})
	call := len(g.calls)
	g.inFlight++
	if g.inFlight > g.maxInFlight {
		g.maxInFlight = g.inFlight
	}
	g.mu.Unlock()

	payload, delay, err := g.respond(call, action, params)
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			err = &domain.NetworkError{Action: action, Err: ctx.Err()}
		}
	}

	g.mu.Lock()
	g.inFlight--
	g.completed = append(g.completed, call)
	g.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (g *fakeGateway) Calls() []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]gatewayCall(nil), g.calls...)
}

func (g *fakeGateway) callsFor(action domain.Action) []gatewayCall {
	var matched []gatewayCall
	for _, call := range g.Calls() {
		if call.Action == action {
			matched = append(matched, call)
		}
	}
	return matched
}

// staticGateway returns a fakeGateway that answers getClientData with clientData and
// everything else with {"status":"success"}.
func staticGateway(clientData string) *fakeGateway {
	return &fakeGateway{respond: func(_ int, action domain.Action, _ map[string]string) (json.RawMessage, time.Duration, error) {
		if action == domain.ActionGetClientData {
			return json.RawMessage(clientData), 0, nil
		}
		return json.RawMessage(`{"status":"success"}`), 0, nil
	}}
}

type textRenderer struct {
	mu    sync.Mutex
	calls int
}

func (r *textRenderer) Render(surface domain.Surface, snapshot domain.Snapshot) (string, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()
	return string(surface) + ":" + snapshot.DisplayName() + ":" + string(rune('0'+len(snapshot.Orders))), nil
}

type recordingDisplay struct {
	surfaces map[domain.Surface]string
	replaced []domain.Surface
	focused  []domain.Surface
	notices  []string
}

func newRecordingDisplay() *recordingDisplay {
	return &recordingDisplay{surfaces: map[domain.Surface]string{}}
}

func (d *recordingDisplay) Replace(surface domain.Surface, content string) error {
	d.surfaces[surface] = content
	d.replaced = append(d.replaced, surface)
	return nil
}

func (d *recordingDisplay) Focus(surface domain.Surface) error {
	d.focused = append(d.focused, surface)
	return nil
}

func (d *recordingDisplay) Notify(message string) error {
	d.notices = append(d.notices, message)
	return nil
}
