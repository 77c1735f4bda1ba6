package httpapi

import (
	"bytes"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-engine/internal/domain/match"
	"github.com/riskibarqy/match-engine/internal/domain/player"
	"github.com/riskibarqy/match-engine/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/match-engine/internal/platform/cache"
	idgen "github.com/riskibarqy/match-engine/internal/platform/id"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/platform/metrics"
	"github.com/riskibarqy/match-engine/internal/simulation"
	"github.com/riskibarqy/match-engine/internal/usecase"
)

var requestPositions = []string{"GK", "LB", "CB", "CB", "RB", "CDM", "CM", "CM", "LW", "RW", "ST"}

func teamPayload(id string, rating int) teamRequest {
	t := teamRequest{
		ID:        id,
		Name:      "FC " + id,
		Formation: "4-3-3",
		Tactics:   tacticsRequest{AttackingStyle: "possession", Pressing: "high"},
	}
	for i, pos := range requestPositions {
		t.Players = append(t.Players, playerRequest{
			ID:          fmt.Sprintf("%s-%d", id, i+1),
			Name:        fmt.Sprintf("%s player %d", id, i+1),
			Position:    pos,
			Consistency: 65,
			Attributes:  player.Uniform(rating),
		})
	}
	return t
}

type testEnv struct {
	router  http.Handler
	metrics *metrics.Mock
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	engine, err := simulation.NewEngine(simulation.DefaultCalibration(), nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	m := metrics.NewMock()
	service := usecase.NewSimulationService(
		engine,
		memory.NewMatchRepository(),
		cache.NewStore[match.Record](time.Minute),
		idgen.NewRandomGenerator("match"),
		m,
		logging.NewNop(),
		usecase.SimulationServiceConfig{WorkerCount: 4, ForecastMaxIterations: 200},
	)
	router := NewRouter(NewHandler(service, logging.NewNop()), RouterOptions{
		CORSAllowedOrigins: []string{"*"},
		MetricsHandler:     http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("# metrics")) }),
		Metrics:            m,
		Logger:             logging.NewNop(),
	})
	return testEnv{router: router, metrics: m}
}

func (e testEnv) do(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := sonic.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var envelope struct {
		Data  T                `json:"data"`
		Error *googleErrorBody `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response body: %v (body=%s)", err, rec.Body.String())
	}
	if envelope.Error != nil {
		t.Fatalf("unexpected error response: %+v", envelope.Error)
	}
	return envelope.Data
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected status %d, got %d (body=%s)", want, rec.Code, rec.Body.String())
	}
}

func TestHandler_Healthz(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, http.MethodGet, "/healthz", nil), http.StatusOK)
}

func TestHandler_Metrics(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "# metrics" {
		t.Fatalf("unexpected metrics body %q", rec.Body.String())
	}
}

func TestHandler_SimulateThenFetch(t *testing.T) {
	env := newTestEnv(t)
	seed := int64(2024)

	rec := env.do(t, http.MethodPost, "/v1/matches/simulate", simulateMatchRequest{
		fixtureRequest: fixtureRequest{Home: teamPayload("home", 70), Away: teamPayload("away", 62)},
		Seed:           &seed,
	})
	expectStatus(t, rec, http.StatusCreated)
	record := decodeData[match.Record](t, rec)
	if record.Seed != seed {
		t.Fatalf("expected seed %d, got %d", seed, record.Seed)
	}
	if !strings.HasPrefix(record.ID, "match_") {
		t.Fatalf("unexpected id %q", record.ID)
	}
	if record.Result.HomeTeamName != "FC home" {
		t.Fatalf("unexpected home name %q", record.Result.HomeTeamName)
	}
	if len(record.Result.Narrative) == 0 {
		t.Fatalf("expected narrative lines")
	}

	rec = env.do(t, http.MethodGet, "/v1/matches/"+record.ID, nil)
	expectStatus(t, rec, http.StatusOK)
	fetched := decodeData[match.Record](t, rec)
	if fetched.Result.HomeScore != record.Result.HomeScore || fetched.Result.AwayScore != record.Result.AwayScore {
		t.Fatalf("fetched score %d-%d differs from %d-%d",
			fetched.Result.HomeScore, fetched.Result.AwayScore, record.Result.HomeScore, record.Result.AwayScore)
	}

	rec = env.do(t, http.MethodGet, "/v1/matches/"+record.ID+"/commentary", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := rec.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", got)
	}
	if want := strings.Join(record.Result.Narrative, "\n") + "\n"; rec.Body.String() != want {
		t.Fatalf("commentary body does not match narrative")
	}

	rec = env.do(t, http.MethodGet, "/v1/matches?limit=5", nil)
	expectStatus(t, rec, http.StatusOK)
	summaries := decodeData[[]matchSummaryDTO](t, rec)
	if len(summaries) != 1 || summaries[0].ID != record.ID {
		t.Fatalf("expected one summary for %s, got %+v", record.ID, summaries)
	}

	rec = env.do(t, http.MethodGet, "/v1/teams/away/matches", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decodeData[[]matchSummaryDTO](t, rec); len(got) != 1 {
		t.Fatalf("expected 1 team match, got %d", len(got))
	}

	if got := env.metrics.MatchesSimulated(); got != 1 {
		t.Fatalf("expected 1 simulated match, got %d", got)
	}
	if got := env.metrics.HTTPRequests(); got < 5 {
		t.Fatalf("expected at least 5 recorded requests, got %d", got)
	}
}

func TestHandler_GetMatchNotFound(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, http.MethodGet, "/v1/matches/match_missing", nil), http.StatusNotFound)
}

func TestHandler_SimulateMatchValidation(t *testing.T) {
	env := newTestEnv(t)

	bad := teamPayload("home", 60)
	bad.Players[3].Position = "SW"
	rec := env.do(t, http.MethodPost, "/v1/matches/simulate", simulateMatchRequest{
		fixtureRequest: fixtureRequest{Home: bad, Away: teamPayload("away", 60)},
	})
	expectStatus(t, rec, http.StatusBadRequest)

	attrs := teamPayload("home", 60)
	attrs.Players[0].Attributes.Reflexes = 140
	rec = env.do(t, http.MethodPost, "/v1/matches/simulate", simulateMatchRequest{
		fixtureRequest: fixtureRequest{Home: attrs, Away: teamPayload("away", 60)},
	})
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHandler_RejectsUnknownFields(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/matches/simulate", strings.NewReader(`{"home":{},"away":{},"weather":"rain"}`))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHandler_SimulateShootout(t *testing.T) {
	env := newTestEnv(t)
	seed := int64(5)

	rec := env.do(t, http.MethodPost, "/v1/shootouts/simulate", simulateMatchRequest{
		fixtureRequest: fixtureRequest{Home: teamPayload("home", 66), Away: teamPayload("away", 66)},
		Seed:           &seed,
	})
	expectStatus(t, rec, http.StatusOK)
	outcome := decodeData[usecase.ShootoutOutcome](t, rec)
	if w := outcome.Shootout.WinnerTeamID; w != "home" && w != "away" {
		t.Fatalf("unexpected winner %q", w)
	}
	if outcome.Shootout.HomeScore == outcome.Shootout.AwayScore {
		t.Fatalf("shootout should be decided")
	}
}

func TestHandler_SimulateRound(t *testing.T) {
	env := newTestEnv(t)
	seed := int64(8)

	rec := env.do(t, http.MethodPost, "/v1/rounds/simulate", simulateRoundRequest{
		Fixtures: []fixtureRequest{
			{Home: teamPayload("a", 70), Away: teamPayload("b", 60)},
			{Home: teamPayload("c", 65), Away: teamPayload("d", 65)},
		},
		Seed: &seed,
	})
	expectStatus(t, rec, http.StatusCreated)
	round := decodeData[usecase.RoundResult](t, rec)
	if len(round.Matches) != 2 || len(round.Standings) != 4 {
		t.Fatalf("expected 2 matches and 4 standings, got %d and %d", len(round.Matches), len(round.Standings))
	}
}

func TestHandler_Forecast(t *testing.T) {
	env := newTestEnv(t)
	seed := int64(13)

	rec := env.do(t, http.MethodPost, "/v1/forecasts", forecastRequest{
		fixtureRequest: fixtureRequest{Home: teamPayload("home", 68), Away: teamPayload("away", 64)},
		Iterations:     60,
		Seed:           &seed,
	})
	expectStatus(t, rec, http.StatusOK)
	forecast := decodeData[usecase.Forecast](t, rec)
	if forecast.Iterations != 60 {
		t.Fatalf("expected 60 iterations, got %d", forecast.Iterations)
	}
	if sum := forecast.HomeWinProbability + forecast.DrawProbability + forecast.AwayWinProbability; math.Abs(sum-1) > 1e-9 {
		t.Fatalf("probabilities sum to %v", sum)
	}

	rec = env.do(t, http.MethodPost, "/v1/forecasts", forecastRequest{
		fixtureRequest: fixtureRequest{Home: teamPayload("home", 68), Away: teamPayload("away", 64)},
		Iterations:     5000,
	})
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHandler_InvalidLimit(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, http.MethodGet, "/v1/matches?limit=abc", nil), http.StatusBadRequest)
}
