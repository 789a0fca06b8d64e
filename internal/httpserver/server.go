// internal/httpserver/server.go
//
// HTTP server wiring for the solver service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Solver sessions: POST /solver/new, POST /solver/feedback, GET /solver/{id}.
//   - Daily solve: mounted under /daily (routes_daily.go).
//   - Self-test runs and stored reports, JWT-gated (routes_selftest.go).
//
// Notes:
//   - Sessions live in the in-memory store and are pruned once idle for
//     SESSION_TTL.
//   - Feedback uses the compact notation: '_' absent, '0' present, '1' hit
//     (or b/y/g).

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/wordpicker/internal/config"
	"github.com/robalobadob/wordpicker/internal/report"
	"github.com/robalobadob/wordpicker/internal/selftest"
	"github.com/robalobadob/wordpicker/internal/solver"
	"github.com/robalobadob/wordpicker/internal/store"
	"github.com/robalobadob/wordpicker/internal/words"
)

// Reports persists self-test runs. *report.Store implements it.
type Reports interface {
	Save(ctx context.Context, r *selftest.Report) (int64, error)
	Recent(ctx context.Context, limit int) ([]report.Run, error)
	Get(ctx context.Context, id int64) (report.Run, error)
	Trials(ctx context.Context, id int64) ([]selftest.Trial, error)
}

// Server bundles router, word list, session store and report store.
type Server struct {
	r       *chi.Mux
	cfg     config.Config
	words   *words.List
	store   store.Store
	reports Reports
}

// New constructs a Server, installs middleware, and registers routes.
// reports may be nil; the report listing endpoints then answer 503.
func New(cfg config.Config, list *words.List, st store.Store, reports Reports) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, words: list, store: st, reports: reports}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordpicker","endpoints":["/health","POST /solver/new","POST /solver/feedback","GET /daily/solve","POST /selftest"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": s.words.Len(), "length": s.words.Length()})
	})

	// Solver sessions
	s.r.Route("/solver", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/feedback", s.handleFeedback)
		r.Get("/{id}", s.handleSession)
	})

	s.mountDaily(s.r)
	s.mountSelftest(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, pruning idle sessions
// in the background.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	go s.pruneLoop(ctx)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) pruneLoop(ctx context.Context) {
	ttl := s.cfg.SessionTTL
	if ttl <= 0 {
		return
	}
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-tick.C:
			if n := s.store.Prune(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("sessions", n).Msg("pruned idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured CLIENT_ORIGIN.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error": code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	http.Error(w, `{"error":"`+code+`"}`, status)
}

// ------------------------------ SOLVER -------------------------------------

// sessionRes is returned while a session is still playing.
type sessionRes struct {
	SessionID  string       `json:"sessionId"`
	State      string       `json:"state"` // "playing" | "solved"
	Guess      string       `json:"guess"`
	Round      int          `json:"round"`
	Candidates int          `json:"candidates"`
	Trace      solver.Trace `json:"trace"`
}

// handleNew starts a session and returns the opening guess.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	sv := solver.New(s.words.Words(), s.cfg.SolverOptions())
	guess, err := sv.Guess()
	if err != nil {
		writeError(w, http.StatusConflict, "no_candidates")
		return
	}
	sess := &store.Session{ID: genID(), Solver: sv, Pending: guess, Touched: time.Now()}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Debug().Str("session", sess.ID).Str("guess", guess).Msg("session started")

	sess.Lock()
	defer sess.Unlock()
	_ = json.NewEncoder(w).Encode(s.snapshot(sess))
}

// feedbackReq is the payload of POST /solver/feedback. Guess is optional:
// it names the word actually played when the player did not use the
// suggestion, and must belong to the word list.
type feedbackReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess,omitempty"`
	Feedback  string `json:"feedback"`
}

// handleFeedback records feedback for the played guess and returns the
// next one. An all-hit feedback closes the session.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, err := s.store.Get(r.Context(), req.SessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	fb, err := solver.ParseFeedback(req.Feedback, s.words.Length())
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed_feedback")
		return
	}
	played := strings.ToLower(strings.TrimSpace(req.Guess))
	if played != "" && !s.words.Contains(played) {
		writeError(w, http.StatusBadRequest, "unknown_word")
		return
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.Pending == "" {
		writeError(w, http.StatusConflict, "finished")
		return
	}
	guess := sess.Pending
	if played != "" {
		guess = played
	}
	sess.Touched = time.Now()

	err = advance(sess, guess, fb)
	switch {
	case errors.Is(err, solver.ErrNoCandidates):
		_ = s.store.Delete(r.Context(), sess.ID)
		log.Warn().Str("session", sess.ID).Str("trace", traceString(sess.Trace)).Msg("no candidates left")
		writeError(w, http.StatusConflict, "no_candidates")
	case err != nil:
		writeError(w, http.StatusBadRequest, "malformed_feedback")
	case sess.Trace.Solved:
		_ = s.store.Delete(r.Context(), sess.ID)
		log.Info().Str("session", sess.ID).Int("rounds", sess.Trace.Rounds()).Msg("session solved")
		res := s.snapshot(sess)
		res.Guess = guess
		_ = json.NewEncoder(w).Encode(res)
	default:
		_ = json.NewEncoder(w).Encode(s.snapshot(sess))
	}
}

// advance applies fb for guess to a live session; the caller holds its
// lock. Rejected feedback leaves the session untouched. The trace grows
// only once the solver has accepted the round; Pending is cleared when the
// session ends, solved or out of candidates.
func advance(sess *store.Session, guess string, fb solver.Feedback) error {
	if len(fb) != len(guess) {
		return fmt.Errorf("%w: %d verdicts for %q", solver.ErrMalformedFeedback, len(fb), guess)
	}
	if !fb.Solved() {
		if err := sess.Solver.Record(guess, fb); err != nil {
			return err
		}
	}
	sess.Trace.Guesses = append(sess.Trace.Guesses, guess)
	sess.Trace.Feedback = append(sess.Trace.Feedback, fb)
	if fb.Solved() {
		sess.Trace.Solved = true
		sess.Pending = ""
		return nil
	}

	next, err := sess.Solver.Guess()
	if err != nil {
		sess.Pending = ""
		return err
	}
	sess.Pending = next
	return nil
}

// handleSession reports the state of a live session.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	sess.Lock()
	defer sess.Unlock()
	_ = json.NewEncoder(w).Encode(s.snapshot(sess))
}

// snapshot renders a session; the caller holds its lock.
func (s *Server) snapshot(sess *store.Session) sessionRes {
	res := sessionRes{
		SessionID: sess.ID,
		State:     "playing",
		Guess:     sess.Pending,
		Round:     sess.Trace.Rounds() + 1,
		Trace:     sess.Trace,
	}
	if sess.Trace.Solved {
		res.State = "solved"
		res.Round = sess.Trace.Rounds()
		return res
	}
	res.Candidates = len(sess.Solver.Candidates())
	return res
}

func traceString(t solver.Trace) string {
	return strings.Join(lo.Map(t.Guesses, func(g string, i int) string {
		return g + ":" + t.Feedback[i].String()
	}), " ")
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
