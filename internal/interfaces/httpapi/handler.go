package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-engine/internal/platform/logging"
	"github.com/riskibarqy/match-engine/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

type Handler struct {
	service   *usecase.SimulationService
	logger    *logging.Logger
	validator *validator.Validate
}

func NewHandler(service *usecase.SimulationService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		service:   service,
		logger:    logger.With("component", "httpapi"),
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SimulateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateMatch")
	defer span.End()

	var req simulateMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	record, err := h.service.SimulateMatch(ctx, usecase.SimulateMatchInput{
		Input: req.toInput(),
		Seed:  req.Seed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "simulate match failed", "home_team_id", req.Home.ID, "away_team_id", req.Away.ID, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, record)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	record, err := h.service.GetMatch(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, record)
}

// GetMatchCommentary renders the stored narrative as plain text, one line
// per entry.
func (h *Handler) GetMatchCommentary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchCommentary")
	defer span.End()

	record, err := h.service.GetMatch(ctx, r.PathValue("matchID"))
	if err != nil {
		writeError(w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	for _, line := range record.Result.Narrative {
		_, _ = buf.WriteString(line)
		_ = buf.WriteByte('\n')
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.B)
}

func (h *Handler) ListRecentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRecentMatches")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := h.service.ListRecent(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list recent matches failed", "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, matchSummariesToDTO(records))
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	limit, err := parseLimit(r)
	if err != nil {
		writeError(w, err)
		return
	}

	teamID := r.PathValue("teamID")
	records, err := h.service.ListByTeam(ctx, teamID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list team matches failed", "team_id", teamID, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, matchSummariesToDTO(records))
}

func (h *Handler) SimulateShootout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateShootout")
	defer span.End()

	var req simulateMatchRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	outcome, err := h.service.SimulateShootout(ctx, req.Home.toState(), req.Away.toState(), req.Seed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, outcome)
}

func (h *Handler) SimulateRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SimulateRound")
	defer span.End()

	var req simulateRoundRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	input := usecase.SimulateRoundInput{Seed: req.Seed}
	for _, f := range req.Fixtures {
		input.Fixtures = append(input.Fixtures, f.toInput())
	}

	result, err := h.service.SimulateRound(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "simulate round failed", "fixtures", len(req.Fixtures), "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, result)
}

func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Forecast")
	defer span.End()

	var req forecastRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(w, err)
		return
	}

	forecast, err := h.service.Forecast(ctx, usecase.ForecastInput{
		Input:      req.toInput(),
		Iterations: req.Iterations,
		Seed:       req.Seed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "forecast failed", "iterations", req.Iterations, "error", err)
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, forecast)
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	if err := h.validator.StructCtx(ctx, dst); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func parseLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput)
	}
	return limit, nil
}
