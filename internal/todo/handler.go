package todo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Faheem2407/go-todo-app/internal/auth"
	"github.com/Faheem2407/go-todo-app/pkg/utils"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func todoIDFromURL(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, errors.New("missing id")
	}
	return strconv.ParseInt(idStr, 10, 64)
}

func writeTodoError(w http.ResponseWriter, err error, fallback string) {
	var fe utils.FieldErrors
	switch {
	case errors.As(err, &fe):
		utils.WriteFieldErrors(w, fe)
	case errors.Is(err, ErrForbidden):
		utils.WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "todo not found")
	default:
		utils.WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// GET /api/todos
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	todos, err := h.svc.ListTodos(ctx, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list todos")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todos)
}

// POST /api/todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in CreateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	todo, err := h.svc.CreateTodo(ctx, userID, in)
	if err != nil {
		writeTodoError(w, err, "failed to create todo")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, todo)
}

// GET /api/todos/{id}
func (h *Handler) GetTodoByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := todoIDFromURL(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	todo, err := h.svc.GetTodo(ctx, id, userID)
	if err != nil {
		writeTodoError(w, err, "failed to get todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todo)
}

// PUT /api/todos/{id}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := todoIDFromURL(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var in UpdateTodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	todo, err := h.svc.UpdateTodo(ctx, id, userID, in)
	if err != nil {
		writeTodoError(w, err, "failed to update todo")
		return
	}

	utils.WriteJSON(w, http.StatusOK, todo)
}

// DELETE /api/todos/{id}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := todoIDFromURL(r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.svc.DeleteTodo(ctx, id, userID); err != nil {
		writeTodoError(w, err, "failed to delete todo")
		return
	}

	utils.WriteJSON(w, http.StatusNoContent, nil)
}
