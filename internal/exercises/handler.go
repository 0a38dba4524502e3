package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/repforge/repforge/internal/telemetry/tracing"
	"github.com/repforge/repforge/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=exercises_test

type exercisesRepo interface {
	Get(ctx context.Context, exerciseID string) (ExerciseType, error)
	List(ctx context.Context, params ListParams) ([]ExerciseType, error)
	Add(ctx context.Context, exercise ExerciseType) (ExerciseType, error)
}

type Handler struct {
	repo exercisesRepo
}

func NewHandler(repo exercisesRepo) *Handler {
	return &Handler{repo: repo}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	exercisesRouter := router.PathPrefix("/exercises").Subrouter()
	exercisesRouter.HandleFunc("", handler.handleList).Methods("GET").Name("list-exercises")
	exercisesRouter.HandleFunc("", handler.handleAdd).Methods("POST").Name("add-exercise")
	exercisesRouter.HandleFunc("/{id}", handler.handleGet).Methods("GET").Name("get-exercise")
}

func (handler *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.list")
	defer span.End()

	exerciseTypes, err := handler.repo.List(ctx, ListParams{
		MuscleGroup: r.URL.Query().Get("muscleGroup"),
	})
	if err != nil {
		log.Errorf("list exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}

	exTypesJson, err := json.Marshal(exerciseTypes)
	if err != nil {
		log.Errorf("marshal exercises: %s", err)
		http.Error(w, "list exercises failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exTypesJson, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	exercise, err := handler.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrExerciseNotFound) {
			http.Error(w, "exercise not found", http.StatusNotFound)
			return
		}
		log.Errorf("get exercise: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("marshal exercise: %s", err)
		http.Error(w, "get exercise failed", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusOK)
}

func (handler *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	var exercise ExerciseType
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		log.Errorf("add exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if exercise.Name == "" || exercise.MuscleGroup == "" {
		http.Error(w, "error, exercise name and muscle group are required", http.StatusBadRequest)
		return
	}

	exercise.MuscleGroup = strings.ToLower(exercise.MuscleGroup)
	if !slices.Contains(MuscleGroups, exercise.MuscleGroup) {
		http.Error(w, "error, invalid muscle group", http.StatusBadRequest)
		return
	}

	added, err := handler.repo.Add(ctx, exercise)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			http.Error(w, "exercise already exists", http.StatusConflict)
			return
		}
		log.Errorf("add exercise: %s", err)
		http.Error(w, "add exercise failed", http.StatusInternalServerError)
		return
	}

	addedJson, err := json.Marshal(added)
	if err != nil {
		log.Errorf("marshal added exercise: %s", err)
		http.Error(w, "add exercise failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %s [%s]", added.Name, added.ID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedJson, http.StatusCreated)
}
