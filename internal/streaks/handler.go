package streaks

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/repforge/repforge/internal/auth"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=streaks_test

type streaksService interface {
	PlannedStreak(ctx context.Context, userID int, asOf time.Time) (Result, error)
	Status(ctx context.Context, userID int) (StatusResult, error)
	StreakData(ctx context.Context, userID int) (StreakData, error)
}

type Handler struct {
	service streaksService

	// nowFunc is replaceable in tests
	nowFunc func() time.Time
}

func NewHandler(service streaksService) *Handler {
	return &Handler{
		service: service,
		nowFunc: time.Now,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	streaksRouter := router.PathPrefix("/streaks").Subrouter()
	streaksRouter.HandleFunc("/planned", handler.handlePlanned).Methods("GET").Name("planned-streak")
	streaksRouter.HandleFunc("/status", handler.handleStatus).Methods("GET").Name("streak-status")
	streaksRouter.HandleFunc("/data", handler.handleData).Methods("GET").Name("streak-data")
}

func (handler *Handler) handlePlanned(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.planned")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	asOf := pkg.DayOf(handler.nowFunc())
	if asOfParam := r.URL.Query().Get("asOf"); asOfParam != "" {
		parsed, err := pkg.ParseDay(asOfParam)
		if err != nil {
			http.Error(w, "error, invalid asOf date", http.StatusBadRequest)
			return
		}
		asOf = parsed
	}

	result, err := handler.service.PlannedStreak(ctx, userID, asOf)
	if err != nil {
		log.Errorf("planned streak for user %d: %s", userID, err)
		http.Error(w, "planned streak failed", http.StatusInternalServerError)
		return
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("marshal planned streak: %s", err)
		http.Error(w, "planned streak failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}

func (handler *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.status")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	status, err := handler.service.Status(ctx, userID)
	if err != nil {
		log.Errorf("streak status for user %d: %s", userID, err)
		http.Error(w, "streak status failed", http.StatusInternalServerError)
		return
	}

	statusJson, err := json.Marshal(status)
	if err != nil {
		log.Errorf("marshal streak status: %s", err)
		http.Error(w, "streak status failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, statusJson, http.StatusOK)
}

func (handler *Handler) handleData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.streaks.data")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	data, err := handler.service.StreakData(ctx, userID)
	if err != nil {
		log.Errorf("streak data for user %d: %s", userID, err)
		http.Error(w, "streak data failed", http.StatusInternalServerError)
		return
	}

	dataJson, err := json.Marshal(data)
	if err != nil {
		log.Errorf("marshal streak data: %s", err)
		http.Error(w, "streak data failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, dataJson, http.StatusOK)
}
