// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily word.
//   - GET /daily/solve?date=YYYY-MM-DD → solver trace for that day's word
//
// The word is picked deterministically from the universe with
// HMAC(DAILY_SALT, date), so every instance sharing the salt and list
// agrees on it. A missing date means today (UTC).

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordpicker/internal/daily"
	"github.com/robalobadob/wordpicker/internal/game"
	"github.com/robalobadob/wordpicker/internal/solver"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/solve", s.handleDailySolve)
	})
}

// dailySolveRes is returned by /daily/solve.
type dailySolveRes struct {
	Date      string       `json:"date"`
	WordIndex int          `json:"wordIndex"`
	Word      string       `json:"word"`
	Rounds    int          `json:"rounds"`
	Trace     solver.Trace `json:"trace"`
}

// handleDailySolve plays the day's word with a fresh solver.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDate(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_date")
		return
	}
	if s.words.Len() == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	idx := daily.WordIndex(date, s.cfg.DailySalt, s.words.Len())
	word := s.words.At(idx)

	g := game.New(word, s.cfg.MaxRounds, s.cfg.Scorer())
	tr, err := solver.New(s.words.Words(), s.cfg.SolverOptions()).Play(g, s.cfg.MaxRounds)
	if err != nil && !errors.Is(err, solver.ErrNoCandidates) {
		log.Error().Err(err).Str("date", daily.DateKey(date)).Msg("daily solve")
		writeError(w, http.StatusInternalServerError, "solve_failed")
		return
	}

	_ = json.NewEncoder(w).Encode(dailySolveRes{
		Date:      daily.DateKey(date),
		WordIndex: idx,
		Word:      word,
		Rounds:    tr.Rounds(),
		Trace:     tr,
	})
}
