package plans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/repforge/repforge/internal/auth"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=plans_test

type plansRepo interface {
	GetActivePlan(ctx context.Context, userID int) (Plan, error)
	ListDays(ctx context.Context, planID int) ([]PlanDay, error)
}

type scheduleResolver interface {
	WorkoutWeekdays(ctx context.Context, userID int) (Weekdays, bool, error)
}

type Handler struct {
	repo     plansRepo
	resolver scheduleResolver
}

func NewHandler(repo plansRepo, resolver scheduleResolver) *Handler {
	return &Handler{
		repo:     repo,
		resolver: resolver,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	plansRouter := router.PathPrefix("/plans").Subrouter()
	plansRouter.HandleFunc("/active", handler.handleGetActive).Methods("GET").Name("get-active-plan")
	plansRouter.HandleFunc("/schedule", handler.handleGetSchedule).Methods("GET").Name("get-schedule")
}

func (handler *Handler) handleGetActive(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get_active")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	plan, err := handler.repo.GetActivePlan(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPlanNotFound) {
			http.Error(w, "no active plan", http.StatusNotFound)
			return
		}
		log.Errorf("get active plan for user %d: %s", userID, err)
		http.Error(w, "get active plan failed", http.StatusInternalServerError)
		return
	}

	plan.Days, err = handler.repo.ListDays(ctx, plan.ID)
	if err != nil {
		log.Errorf("list days of plan %d: %s", plan.ID, err)
		http.Error(w, "get active plan failed", http.StatusInternalServerError)
		return
	}

	planJson, err := json.Marshal(plan)
	if err != nil {
		log.Errorf("marshal plan: %s", err)
		http.Error(w, "get active plan failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, planJson, http.StatusOK)
}

type scheduleResponse struct {
	HasSchedule     bool           `json:"hasSchedule"`
	WorkoutWeekdays []time.Weekday `json:"workoutWeekdays"`
}

func (handler *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.plans.get_schedule")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	weekdays, hasSchedule, err := handler.resolver.WorkoutWeekdays(ctx, userID)
	if err != nil {
		log.Errorf("resolve schedule for user %d: %s", userID, err)
		http.Error(w, "get schedule failed", http.StatusInternalServerError)
		return
	}

	resp := scheduleResponse{
		HasSchedule:     hasSchedule,
		WorkoutWeekdays: weekdays.List(),
	}
	if resp.WorkoutWeekdays == nil {
		resp.WorkoutWeekdays = []time.Weekday{}
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("marshal schedule: %s", err)
		http.Error(w, "get schedule failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
