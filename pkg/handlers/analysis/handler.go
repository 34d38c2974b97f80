package analysis

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/coop-atlas/pkg/adapters"
	"github.com/de-tools/coop-atlas/pkg/models/api"
	"github.com/de-tools/coop-atlas/pkg/models/domain"
	"github.com/de-tools/coop-atlas/pkg/services/analysis"
	"github.com/de-tools/coop-atlas/pkg/services/survey"
)

const defaultTopN = 10

type Handler struct {
	datasets survey.Explorer
	analysis analysis.Explorer
}

func NewHandler(datasets survey.Explorer, analysisExplorer analysis.Explorer) *Handler {
	return &Handler{
		datasets: datasets,
		analysis: analysisExplorer,
	}
}

func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.datasets.ListDatasets(ctx)
	if err != nil {
		respondError(w, r, err, "failed to list datasets")
		return
	}
	response := make([]api.Dataset, 0, len(names))
	for _, name := range names {
		response = append(response, api.Dataset{Name: name})
	}
	respondJSON(w, r, response)
}

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")

	periods, err := h.analysis.Periods(ctx, dataset)
	if err != nil {
		respondError(w, r, err, "failed to list periods")
		return
	}
	if periods == nil {
		periods = []string{}
	}
	respondJSON(w, r, periods)
}

func (h *Handler) GetCorrelations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")
	period := r.URL.Query().Get("period")

	matrix, err := h.analysis.Correlations(ctx, dataset, period)
	if err != nil {
		respondError(w, r, err, "failed to compute correlations")
		return
	}
	if matrix.Empty() {
		// degenerate input, not an error
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, adapters.MapCorrelationMatrixDomainToApi(matrix))
}

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")
	variable := domain.Variable(chi.URLParam(r, "variable"))
	period := r.URL.Query().Get("period")

	cmp, err := h.analysis.Compare(ctx, dataset, variable, period)
	if err != nil {
		respondError(w, r, err, "failed to compare groups")
		return
	}
	if cmp == nil {
		// a subgroup had fewer than two observations
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, adapters.MapComparisonDomainToApi(*cmp))
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")

	cutoffYear := 0
	if from := r.URL.Query().Get("from"); from != "" {
		year, err := strconv.Atoi(from)
		if err != nil {
			http.Error(w, "invalid 'from' year", http.StatusBadRequest)
			return
		}
		cutoffYear = year
	}

	entries, err := h.analysis.Trend(ctx, dataset, cutoffYear)
	if err != nil {
		respondError(w, r, err, "failed to aggregate trend")
		return
	}
	response := make([]api.TrendEntry, 0, len(entries))
	for _, e := range entries {
		response = append(response, adapters.MapTrendEntryDomainToApi(e))
	}
	respondJSON(w, r, response)
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")
	period := r.URL.Query().Get("period")

	insights, err := h.analysis.Insights(ctx, dataset, period)
	if err != nil {
		respondError(w, r, err, "failed to synthesize insights")
		return
	}
	response := make([]api.Insight, 0, len(insights))
	for _, in := range insights {
		response = append(response, adapters.MapInsightDomainToApi(in))
	}
	respondJSON(w, r, response)
}

func (h *Handler) GetTopRegions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dataset := chi.URLParam(r, "dataset")
	variable := domain.Variable(chi.URLParam(r, "variable"))
	period := r.URL.Query().Get("period")

	n := defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "invalid 'n'", http.StatusBadRequest)
			return
		}
		n = parsed
	}

	ranks, err := h.analysis.TopRegions(ctx, dataset, variable, period, n)
	if err != nil {
		respondError(w, r, err, "failed to rank regions")
		return
	}
	response := make([]api.RegionRank, 0, len(ranks))
	for _, rank := range ranks {
		response = append(response, adapters.MapRegionRankDomainToApi(rank))
	}
	respondJSON(w, r, response)
}

func respondJSON(w http.ResponseWriter, r *http.Request, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	zerolog.Ctx(r.Context()).Error().
		Err(err).
		Msg(msg)
	http.Error(w, msg, http.StatusNotFound)
}
