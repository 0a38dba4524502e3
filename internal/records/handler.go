package records

import (
	"context"
	"encoding/json"
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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=records_test

type recordsReader interface {
	ListForExercise(ctx context.Context, userID int, exerciseID string) ([]PersonalRecord, error)
	Recent(ctx context.Context, userID, limit int) ([]PersonalRecord, error)
	AllTime(ctx context.Context, userID int) ([]PersonalRecord, error)
}

type prDetector interface {
	CheckAndUpdate(ctx context.Context, params CheckParams) (CheckResult, error)
	WouldBe(ctx context.Context, params CheckParams) ([]NewRecord, error)
}

type Handler struct {
	repo           recordsReader
	detector       prDetector
	metricsManager *metrics.Manager
}

func NewHandler(repo recordsReader, detector prDetector, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:           repo,
		detector:       detector,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	recordsRouter := router.PathPrefix("/records").Subrouter()
	recordsRouter.HandleFunc("/check", handler.handleCheck).Methods("POST").Name("check-records")
	recordsRouter.HandleFunc("/would-be", handler.handleWouldBe).Methods("GET").Name("would-be-records")
	recordsRouter.HandleFunc("/exercise/{id}", handler.handleForExercise).Methods("GET").Name("exercise-records")
	recordsRouter.HandleFunc("/recent", handler.handleRecent).Methods("GET").Name("recent-records")
	recordsRouter.HandleFunc("/alltime", handler.handleAllTime).Methods("GET").Name("alltime-records")
}

type checkRequest struct {
	ExerciseID string  `json:"exerciseId"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	SessionID  int     `json:"sessionId"`
	Date       string  `json:"date"`
}

func (req checkRequest) validate() string {
	if req.ExerciseID == "" {
		return "error, exercise id is required"
	}
	if req.Weight < 0 {
		return "error, weight must not be negative"
	}
	if req.Reps <= 0 {
		return "error, reps must be positive"
	}
	if _, err := pkg.ParseDay(req.Date); err != nil {
		return "error, invalid date"
	}
	return ""
}

func (handler *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.check")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("check records, unmarshal json params: %s", err)
		http.Error(w, "check records failed", http.StatusBadRequest)
		return
	}
	if msg := req.validate(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	result, err := handler.detector.CheckAndUpdate(ctx, CheckParams{
		UserID:     userID,
		ExerciseID: req.ExerciseID,
		Weight:     req.Weight,
		Reps:       req.Reps,
		SessionID:  req.SessionID,
		Date:       req.Date,
	})
	if err != nil {
		log.Errorf("check records for user %d: %s", userID, err)
		http.Error(w, "check records failed", http.StatusInternalServerError)
		return
	}

	if len(result.NewRecords) > 0 {
		handler.metricsManager.CounterPersonalRecords.Add(float64(len(result.NewRecords)))
	}
	if result.FirstPRUnlocked {
		handler.metricsManager.CounterAchievementsUnlocked.Inc()
	}
	if result.NewRecords == nil {
		result.NewRecords = []NewRecord{}
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal check result: %s", err)
		http.Error(w, "check records failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) handleWouldBe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.would_be")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID := r.URL.Query().Get("exerciseId")
	if exerciseID == "" {
		http.Error(w, "error, exercise id is required", http.StatusBadRequest)
		return
	}
	weight, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || weight < 0 {
		http.Error(w, "error, invalid weight", http.StatusBadRequest)
		return
	}
	reps, err := strconv.Atoi(r.URL.Query().Get("reps"))
	if err != nil || reps <= 0 {
		http.Error(w, "error, invalid reps", http.StatusBadRequest)
		return
	}

	wouldBe, err := handler.detector.WouldBe(ctx, CheckParams{
		UserID:     userID,
		ExerciseID: exerciseID,
		Weight:     weight,
		Reps:       reps,
	})
	if err != nil {
		log.Errorf("would-be records for user %d: %s", userID, err)
		http.Error(w, "would-be records failed", http.StatusInternalServerError)
		return
	}
	if wouldBe == nil {
		wouldBe = []NewRecord{}
	}

	wouldBeJson, err := json.Marshal(wouldBe)
	if err != nil {
		log.Errorf("marshal would-be records: %s", err)
		http.Error(w, "would-be records failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, wouldBeJson, http.StatusOK)
}

func (handler *Handler) writeRecords(w http.ResponseWriter, prs []PersonalRecord) {
	if prs == nil {
		prs = []PersonalRecord{}
	}
	prsJson, err := json.Marshal(prs)
	if err != nil {
		log.Errorf("marshal records: %s", err)
		http.Error(w, "get records failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, prsJson, http.StatusOK)
}

func (handler *Handler) handleForExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.for_exercise")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	prs, err := handler.repo.ListForExercise(ctx, userID, exerciseID)
	if err != nil {
		log.Errorf("records for exercise %s, user %d: %s", exerciseID, userID, err)
		http.Error(w, "get records failed", http.StatusInternalServerError)
		return
	}
	handler.writeRecords(w, prs)
}

func (handler *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.recent")
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

	prs, err := handler.repo.Recent(ctx, userID, limit)
	if err != nil {
		log.Errorf("recent records for user %d: %s", userID, err)
		http.Error(w, "get records failed", http.StatusInternalServerError)
		return
	}
	handler.writeRecords(w, prs)
}

func (handler *Handler) handleAllTime(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.all_time")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	prs, err := handler.repo.AllTime(ctx, userID)
	if err != nil {
		log.Errorf("all-time records for user %d: %s", userID, err)
		http.Error(w, "get records failed", http.StatusInternalServerError)
		return
	}
	handler.writeRecords(w, prs)
}
