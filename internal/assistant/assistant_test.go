package assistant

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/williambfroemming/ff-ai-draft-assistant/internal/ledger"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/pool"
	"github.com/williambfroemming/ff-ai-draft-assistant/internal/summary"
)

// ---------------------------------------------------------------------------
// BuildContext
// ---------------------------------------------------------------------------

func TestBuildContext_IncludesCoreOutputs(t *testing.T) {
	team := ledger.TeamState{
		Manager:   "Bill",
		Found:     true,
		Roster:    []ledger.Pick{{Player: "A", Position: "RB", Price: 42, PriceValid: true, Manager: "Bill"}},
		Spent:     42,
		Remaining: 158,
		PositionCounts: map[string]int{
			"RB": 1,
		},
	}
	available := []pool.Player{{Name: "B", Position: "WR"}}
	opponents := []summary.OpponentSummary{
		{Manager: "Ann", Spent: 50, Remaining: 150, PlayersDrafted: 2},
	}

	ctx := BuildContext(team, available, opponents, 3)

	for _, want := range []string{
		"A  RB  $42",
		"Remaining budget: $158.0",
		"RB=1",
		"B  WR",
		"Ann: spent $50, remaining $150, 2 players",
		"3 picks in the draft so far",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("context missing %q:\n%s", want, ctx)
		}
	}
}

func TestBuildContext_EmptyStateDegrades(t *testing.T) {
	ctx := BuildContext(ledger.TeamState{Remaining: 200}, nil, nil, 0)
	if !strings.Contains(ctx, "no players drafted yet") {
		t.Errorf("empty roster not announced:\n%s", ctx)
	}
	if !strings.Contains(ctx, "0 picks") {
		t.Errorf("pick count missing:\n%s", ctx)
	}
}

func TestBuildContext_OverspendWarning(t *testing.T) {
	ctx := BuildContext(ledger.TeamState{Remaining: -12}, nil, nil, 1)
	if !strings.Contains(ctx, "overspent") {
		t.Errorf("negative budget should surface a warning:\n%s", ctx)
	}
}

func TestBuildContext_CapsAvailableList(t *testing.T) {
	available := make([]pool.Player, 0, 25)
	for i := 0; i < 25; i++ {
		available = append(available, pool.Player{Name: "P" + string(rune('A'+i)), Position: "RB"})
	}
	ctx := BuildContext(ledger.TeamState{}, available, nil, 0)
	if strings.Contains(ctx, available[contextPlayerLimit].Name+"  RB") {
		t.Errorf("context should list at most %d available players", contextPlayerLimit)
	}
}

// ---------------------------------------------------------------------------
// HTTPCompleter
// ---------------------------------------------------------------------------

func TestHTTPCompleter_Complete(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Nominate a kicker."}}]}`))
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, "sk-test", "gpt-4")
	answer, err := c.Complete(context.Background(), "system ctx", "what now?")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if answer != "Nominate a kicker." {
		t.Errorf("answer = %q", answer)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(gotBody, `"system"`) || !strings.Contains(gotBody, "what now?") {
		t.Errorf("request body missing roles/question: %s", gotBody)
	}
}

func TestHTTPCompleter_APIErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, "", "gpt-4")
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error from non-2xx response")
	} else if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should carry the API message: %v", err)
	}
}

func TestHTTPCompleter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewHTTPCompleter(srv.URL, "", "gpt-4")
	if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}

// ---------------------------------------------------------------------------
// Assistant.Ask
// ---------------------------------------------------------------------------

type fakeCompleter struct {
	system string
	user   string
	answer string
	err    error
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.answer, f.err
}

func TestAsk_PassesContextAndQuestion(t *testing.T) {
	fake := &fakeCompleter{answer: "Bid up to $30."}
	a := New(fake, nil)

	team := ledger.TeamState{Manager: "Bill", Remaining: 158}
	answer, err := a.Ask(context.Background(), "how much for a RB?", team, nil, nil, 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if answer != "Bid up to $30." {
		t.Errorf("answer = %q", answer)
	}
	if fake.user != "how much for a RB?" {
		t.Errorf("user prompt = %q", fake.user)
	}
	if !strings.Contains(fake.system, "auction draft assistant") {
		t.Errorf("system prompt not built from context:\n%s", fake.system)
	}
}
