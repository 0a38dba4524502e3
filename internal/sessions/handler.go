package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/repforge/repforge/internal/auth"
	"github.com/repforge/repforge/internal/telemetry/metrics"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const defaultRecentLimit = 20

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	GetOrCreate(ctx context.Context, userID int, date string, planID *int) (*Session, bool, error)
	Get(ctx context.Context, userID, sessionID int) (*Session, error)
	GetByDate(ctx context.Context, userID int, date string) (*Session, error)
	UpsertSet(ctx context.Context, userID, sessionID int, set SessionSet) (*SessionSet, error)
	ListRecent(ctx context.Context, userID, limit int) ([]Session, error)
	LastWeightForExercise(ctx context.Context, userID int, exerciseID string) (*SessionSet, error)
}

type sessionCompleter interface {
	Complete(ctx context.Context, userID, sessionID int, notes *string) (CompleteResult, error)
}

type streakCacheInvalidator interface {
	InvalidateStatus(userID int)
}

type Handler struct {
	repo           sessionsRepo
	completer      sessionCompleter
	streakCache    streakCacheInvalidator
	metricsManager *metrics.Manager
}

func NewHandler(
	repo sessionsRepo,
	completer sessionCompleter,
	streakCache streakCacheInvalidator,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		repo:           repo,
		completer:      completer,
		streakCache:    streakCache,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	sessionsRouter := router.PathPrefix("/sessions").Subrouter()
	sessionsRouter.HandleFunc("", handler.handleGetOrCreate).Methods("POST").Name("get-or-create-session")
	sessionsRouter.HandleFunc("/recent", handler.handleRecent).Methods("GET").Name("recent-sessions")
	sessionsRouter.HandleFunc("/date/{date}", handler.handleGetByDate).Methods("GET").Name("session-by-date")
	sessionsRouter.HandleFunc("/lastweight/{exerciseId}", handler.handleLastWeight).Methods("GET").Name("last-weight")
	sessionsRouter.HandleFunc("/{id}", handler.handleGet).Methods("GET").Name("get-session")
	sessionsRouter.HandleFunc("/{id}/sets", handler.handleLogSet).Methods("POST").Name("log-set")
	sessionsRouter.HandleFunc("/{id}/complete", handler.handleComplete).Methods("POST").Name("complete-session")
}

func sessionIDFromRequest(r *http.Request) (int, bool) {
	sessionID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || sessionID <= 0 {
		return 0, false
	}
	return sessionID, true
}

type getOrCreateRequest struct {
	Date   string `json:"date"`
	PlanID *int   `json:"planId,omitempty"`
}

func (handler *Handler) handleGetOrCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get_or_create")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req getOrCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("get or create session, unmarshal json params: %s", err)
		http.Error(w, "get or create session failed", http.StatusBadRequest)
		return
	}
	if _, err := pkg.ParseDay(req.Date); err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	session, created, err := handler.repo.GetOrCreate(ctx, userID, req.Date, req.PlanID)
	if err != nil {
		log.Errorf("get or create session for user %d on %s: %s", userID, req.Date, err)
		http.Error(w, "get or create session failed", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if created {
		handler.metricsManager.CounterSessionsCreated.Inc()
		status = http.StatusCreated
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "get or create session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, status)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, ok := sessionIDFromRequest(r)
	if !ok {
		http.Error(w, "error, invalid session id", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, userID, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("get session %d for user %d: %s", sessionID, userID, err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *Handler) handleGetByDate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get_by_date")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := mux.Vars(r)["date"]
	if _, err := pkg.ParseDay(date); err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	session, err := handler.repo.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("get session by date %s for user %d: %s", date, userID, err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("marshal session: %s", err)
		http.Error(w, "get session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

type logSetRequest struct {
	ExerciseID string   `json:"exerciseId"`
	SetIndex   int      `json:"setIndex"`
	Reps       int      `json:"reps"`
	Weight     float64  `json:"weight"`
	RPE        *float64 `json:"rpe,omitempty"`
}

func (req logSetRequest) validate() string {
	if req.ExerciseID == "" {
		return "error, exercise id is required"
	}
	if req.SetIndex < 0 {
		return "error, set index must not be negative"
	}
	if req.Reps <= 0 {
		return "error, reps must be positive"
	}
	if req.Weight < 0 {
		return "error, weight must not be negative"
	}
	if req.RPE != nil && (*req.RPE < 1 || *req.RPE > 10) {
		return "error, rpe must be between 1 and 10"
	}
	return ""
}

func (handler *Handler) handleLogSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.log_set")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, ok := sessionIDFromRequest(r)
	if !ok {
		http.Error(w, "error, invalid session id", http.StatusBadRequest)
		return
	}

	var req logSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("log set, unmarshal json params: %s", err)
		http.Error(w, "log set failed", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	set, err := handler.repo.UpsertSet(ctx, userID, sessionID, SessionSet{
		ExerciseID: req.ExerciseID,
		SetIndex:   req.SetIndex,
		Reps:       req.Reps,
		Weight:     req.Weight,
		RPE:        req.RPE,
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("log set in session %d for user %d: %s", sessionID, userID, err)
		http.Error(w, "log set failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterSetsLogged.Inc()

	setJson, err := json.Marshal(set)
	if err != nil {
		log.Errorf("marshal set: %s", err)
		http.Error(w, "log set failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, setJson, http.StatusOK)
}

type completeRequest struct {
	Notes *string `json:"notes,omitempty"`
}

func (handler *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	sessionID, ok := sessionIDFromRequest(r)
	if !ok {
		http.Error(w, "error, invalid session id", http.StatusBadRequest)
		return
	}

	var req completeRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Errorf("complete session, unmarshal json params: %s", err)
			http.Error(w, "complete session failed", http.StatusBadRequest)
			return
		}
	}

	result, err := handler.completer.Complete(ctx, userID, sessionID, req.Notes)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("complete session %d for user %d: %s", sessionID, userID, err)
		http.Error(w, "complete session failed", http.StatusInternalServerError)
		return
	}

	if !result.AlreadyCompleted {
		handler.metricsManager.CounterSessionsCompleted.Inc()
	}
	if len(result.Streak.NewAchievements) > 0 {
		handler.metricsManager.CounterAchievementsUnlocked.Add(float64(len(result.Streak.NewAchievements)))
	}
	handler.streakCache.InvalidateStatus(userID)

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal complete result: %s", err)
		http.Error(w, "complete session failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.recent")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	limit := defaultRecentLimit
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "error, invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	recent, err := handler.repo.ListRecent(ctx, userID, limit)
	if err != nil {
		log.Errorf("recent sessions for user %d: %s", userID, err)
		http.Error(w, "recent sessions failed", http.StatusInternalServerError)
		return
	}
	if recent == nil {
		recent = []Session{}
	}

	recentJson, err := json.Marshal(recent)
	if err != nil {
		log.Errorf("marshal recent sessions: %s", err)
		http.Error(w, "recent sessions failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, recentJson, http.StatusOK)
}

type lastWeightResponse struct {
	Found  bool     `json:"found"`
	Weight float64  `json:"weight,omitempty"`
	Reps   int      `json:"reps,omitempty"`
	RPE    *float64 `json:"rpe,omitempty"`
}

func (handler *Handler) handleLastWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.last_weight")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["exerciseId"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	set, err := handler.repo.LastWeightForExercise(ctx, userID, exerciseID)
	if err != nil {
		log.Errorf("last weight of %s for user %d: %s", exerciseID, userID, err)
		http.Error(w, "last weight failed", http.StatusInternalServerError)
		return
	}

	resp := lastWeightResponse{}
	if set != nil {
		resp.Found = true
		resp.Weight = set.Weight
		resp.Reps = set.Reps
		resp.RPE = set.RPE
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal last weight: %s", err)
		http.Error(w, "last weight failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
