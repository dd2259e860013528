package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ftzlab/ftzsim/internal/config"
	"github.com/ftzlab/ftzsim/internal/modules/inventory"
	"github.com/ftzlab/ftzsim/internal/modules/ledger"
	"github.com/ftzlab/ftzsim/internal/modules/planning"
)

// SearchHandlers exposes the plan search over HTTP.
type SearchHandlers struct {
	search *planning.Search
	cfg    *config.Config
	chart  ledger.Chart
	log    zerolog.Logger
}

// NewSearchHandlers creates the search handler set.
func NewSearchHandlers(search *planning.Search, cfg *config.Config, chart ledger.Chart, log zerolog.Logger) *SearchHandlers {
	return &SearchHandlers{
		search: search,
		cfg:    cfg,
		chart:  chart,
		log:    log.With().Str("component", "search_handlers").Logger(),
	}
}

// scenarioFromRequest decodes the request body into a scenario, falling
// back to the built-in model on an empty body. The loaded chart of
// accounts applies unless the caller supplies their own.
func (h *SearchHandlers) scenarioFromRequest(r *http.Request) (*planning.Scenario, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	sc := planning.DefaultScenario(h.cfg.DomesticTaxRate, h.cfg.ZoneTaxRate)
	if len(body) > 0 {
		sc = &planning.Scenario{}
		if err := json.Unmarshal(body, sc); err != nil {
			return nil, fmt.Errorf("invalid scenario payload: %w", err)
		}
	}
	if len(sc.Chart.Entries) == 0 {
		sc.Chart = h.chart
	}
	return sc, nil
}

// HandleRunSearch runs an exhaustive search and returns the result.
// POST /api/search/run
func (h *SearchHandlers) HandleRunSearch(w http.ResponseWriter, r *http.Request) {
	sc, err := h.scenarioFromRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.search.Run(r.Context(), sc, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Search run failed")
		status := http.StatusInternalServerError
		if errors.Is(err, inventory.ErrInsufficientInventory) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleDefaultScenario returns the built-in scenario so callers can
// inspect or tweak it before posting a run.
// GET /api/scenario/default
func (h *SearchHandlers) HandleDefaultScenario(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, planning.DefaultScenario(h.cfg.DomesticTaxRate, h.cfg.ZoneTaxRate))
}

// streamEvent is one SSE payload of the search stream.
type streamEvent struct {
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleSearchStream runs a search and streams progress over SSE,
// finishing with a "result" event carrying the full result payload.
// GET /api/search/stream
func (h *SearchHandlers) HandleSearchStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sc := planning.DefaultScenario(h.cfg.DomesticTaxRate, h.cfg.ZoneTaxRate)
	sc.Chart = h.chart

	h.log.Info().Msg("Client connected to search stream")

	progressChan := make(chan streamEvent, 16)
	resultChan := make(chan *planning.Result, 1)
	errChan := make(chan error, 1)

	go func() {
		result, err := h.search.Run(r.Context(), sc, func(current, total int, message string) {
			// Non-blocking send; a slow client drops intermediate updates.
			select {
			case progressChan <- streamEvent{Current: current, Total: total, Message: message}:
			default:
			}
		})
		if err != nil {
			errChan <- err
			return
		}
		resultChan <- result
	}()

	for {
		select {
		case <-r.Context().Done():
			h.log.Info().Msg("Search stream client disconnected")
			return
		case ev := <-progressChan:
			writeSSE(w, "progress", ev)
			flusher.Flush()
		case err := <-errChan:
			writeSSE(w, "error", map[string]string{"error": err.Error()})
			flusher.Flush()
			return
		case result := <-resultChan:
			// Drain any progress left behind by the final batch.
			for {
				select {
				case ev := <-progressChan:
					writeSSE(w, "progress", ev)
				default:
					writeSSE(w, "result", result)
					flusher.Flush()
					return
				}
			}
		}
	}
}

// writeSSE writes one named server-sent event.
func writeSSE(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
