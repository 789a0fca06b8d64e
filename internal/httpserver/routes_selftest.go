// internal/httpserver/routes_selftest.go
//
// Operator routes, all behind requireAuth:
//   - POST /selftest            → run the self-test over the universe, store it
//   - GET  /selftest/runs       → latest stored runs (?limit=, default 20)
//   - GET  /selftest/runs/{id}  → one run with its per-word trials

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordpicker/internal/report"
	"github.com/robalobadob/wordpicker/internal/selftest"
)

// mountSelftest registers the gated /selftest routes.
func (s *Server) mountSelftest(r chi.Router) {
	r.Route("/selftest", func(r chi.Router) {
		r.Use(requireAuth(s.cfg.JWTSecret))
		r.Post("/", s.handleSelftest)
		r.Get("/runs", s.handleRuns)
		r.Get("/runs/{id}", s.handleRun)
	})
}

// selftestReq optionally overrides the configured workers and round cap.
type selftestReq struct {
	Workers   int `json:"workers"`
	MaxRounds int `json:"maxRounds"`
}

type selftestRes struct {
	ID      int64            `json:"id,omitempty"`
	Summary selftest.Summary `json:"summary"`
}

func (s *Server) handleSelftest(w http.ResponseWriter, r *http.Request) {
	var req selftestReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}
	opts := selftest.Options{
		Solver:    s.cfg.SolverOptions(),
		Scorer:    s.cfg.Scorer(),
		Scoring:   s.cfg.Scoring,
		MaxRounds: s.cfg.MaxRounds,
		Workers:   s.cfg.Workers,
	}
	if req.Workers > 0 {
		opts.Workers = req.Workers
	}
	if req.MaxRounds > 0 {
		opts.MaxRounds = req.MaxRounds
	}

	log.Info().Str("operator", operator(r.Context())).Int("words", s.words.Len()).Msg("self-test requested")
	rep, err := selftest.Run(r.Context(), s.words.Words(), opts)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "cancelled")
		return
	}

	res := selftestRes{Summary: rep.Summarize()}
	if s.reports != nil {
		id, err := s.reports.Save(r.Context(), rep)
		if err != nil {
			log.Error().Err(err).Msg("save self-test report")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		res.ID = id
	}
	_ = json.NewEncoder(w).Encode(res)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "no_report_store")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	runs, err := s.reports.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list self-test runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.reports == nil {
		writeError(w, http.StatusServiceUnavailable, "no_report_store")
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id")
		return
	}
	run, err := s.reports.Get(r.Context(), id)
	if errors.Is(err, report.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	trials, err := s.reports.Trials(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"run": run, "trials": trials})
}
