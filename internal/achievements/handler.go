package achievements

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/repforge/repforge/internal/auth"
	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=achievements_test

type achievementsRepo interface {
	List(ctx context.Context, userID int) ([]Achievement, error)
}

type Handler struct {
	repo achievementsRepo
}

func NewHandler(repo achievementsRepo) *Handler {
	return &Handler{repo: repo}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/achievements", handler.handleList).Methods("GET").Name("list-achievements")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	unlocked, err := handler.repo.List(ctx, userID)
	if err != nil {
		log.Errorf("list achievements for user %d: %s", userID, err)
		http.Error(w, "list achievements failed", http.StatusInternalServerError)
		return
	}
	if unlocked == nil {
		unlocked = []Achievement{}
	}

	unlockedJson, err := json.Marshal(unlocked)
	if err != nil {
		log.Errorf("marshal achievements: %s", err)
		http.Error(w, "list achievements failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, unlockedJson, http.StatusOK)
}
