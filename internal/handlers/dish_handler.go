package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/santhosh-ovd/indian-dishes/server/internal/models"
	"github.com/santhosh-ovd/indian-dishes/server/internal/repository"
	"github.com/santhosh-ovd/indian-dishes/server/internal/service"
)

// DishHandler handles dish-related HTTP requests
type DishHandler struct {
	service *service.DishService
	logger  *slog.Logger
}

// NewDishHandler creates a new dish handler
func NewDishHandler(service *service.DishService, logger *slog.Logger) *DishHandler {
	return &DishHandler{
		service: service,
		logger:  logger,
	}
}

// Routes mounts the dish endpoints on r. Static segments are registered
// before the catch-all name lookup; chi prefers them regardless of order.
func (h *DishHandler) Routes(r chi.Router) {
	r.Get("/", h.ListDishes)
	r.Get("/search", h.SearchDishes)
	r.Get("/advanced", h.AdvancedSearch)
	r.Get("/id/{id}", h.GetDishByID)
	r.Get("/region/{region}", h.byAttribute("region", h.service.DishesByRegion))
	r.Get("/state/{state}", h.byAttribute("state", h.service.DishesByState))
	r.Get("/diet/{diet}", h.byAttribute("diet", h.service.DishesByDiet))
	r.Get("/course/{course}", h.byAttribute("course", h.service.DishesByCourse))
	r.Post("/possible", h.FindPossibleDishes)
	r.Post("/ingredients", h.SearchByIngredients)
	r.Get("/{name}", h.GetDishByName)
}

// ListDishes handles GET /api/dishes
// Query: page, limit, sortBy, sortOrder, diet, course. Responds {data, total}.
func (h *DishHandler) ListDishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, err := parsePositiveDefault(q.Get("page"), models.DefaultPage)
	if err != nil {
		h.logger.Warn("invalid page parameter", "page", q.Get("page"))
		WriteError(w, http.StatusBadRequest, "Invalid page parameter", h.logger)
		return
	}

	limit, err := parsePositiveDefault(q.Get("limit"), models.DefaultLimit)
	if err != nil {
		h.logger.Warn("invalid limit parameter", "limit", q.Get("limit"))
		WriteError(w, http.StatusBadRequest, "Invalid limit parameter", h.logger)
		return
	}

	sortBy, ok := models.ParseSortField(q.Get("sortBy"))
	if !ok {
		h.logger.Debug("ignoring unknown sort field", "sortBy", q.Get("sortBy"))
	}

	req := models.QueryRequest{
		Page:      page,
		Limit:     limit,
		SortBy:    sortBy,
		SortOrder: models.ParseSortOrder(q.Get("sortOrder")),
		Diet:      strings.TrimSpace(q.Get("diet")),
		Course:    strings.TrimSpace(q.Get("course")),
	}

	result, err := h.service.ListDishes(r.Context(), req)
	if err != nil {
		h.internalError(w, "failed to list dishes", err)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}

// SearchDishes handles GET /api/dishes/search?query=
// A missing or blank query yields [].
func (h *DishHandler) SearchDishes(w http.ResponseWriter, r *http.Request) {
	dishes, err := h.service.SearchDishes(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		h.internalError(w, "failed to search dishes", err)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// AdvancedSearch handles GET /api/dishes/advanced
// Query: name, state, region, diet, course, flavor_profile; all optional and ANDed.
func (h *DishHandler) AdvancedSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := models.SearchCriteria{
		Name:          q.Get("name"),
		State:         q.Get("state"),
		Region:        q.Get("region"),
		Diet:          q.Get("diet"),
		Course:        q.Get("course"),
		FlavorProfile: q.Get("flavor_profile"),
	}

	dishes, err := h.service.AdvancedSearch(r.Context(), criteria)
	if err != nil {
		h.internalError(w, "failed to run advanced search", err)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// GetDishByName handles GET /api/dishes/{name}
// - 200: the first dish whose name matches ignoring case
// - 404: Dish not found
func (h *DishHandler) GetDishByName(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")

	dish, err := h.service.GetDishByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			h.logger.Info("dish not found", "name", name)
			WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
			return
		}
		h.internalError(w, "failed to get dish", err)
		return
	}

	WriteJSON(w, http.StatusOK, dish, h.logger)
}

// GetDishByID handles GET /api/dishes/id/{id}
func (h *DishHandler) GetDishByID(w http.ResponseWriter, r *http.Request) {
	id := urlParam(r, "id")

	dish, err := h.service.GetDishByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrDishNotFound) {
			h.logger.Info("dish not found", "id", id)
			WriteError(w, http.StatusNotFound, "Dish not found", h.logger)
			return
		}
		h.internalError(w, "failed to get dish", err)
		return
	}

	WriteJSON(w, http.StatusOK, dish, h.logger)
}

// FindPossibleDishes handles POST /api/dishes/possible
// Body: {"ingredients": ["..."]}. A missing or non-array ingredients field is a 400.
func (h *DishHandler) FindPossibleDishes(w http.ResponseWriter, r *http.Request) {
	ingredients, ok := h.decodeIngredients(w, r)
	if !ok {
		return
	}

	dishes, err := h.service.FindPossibleDishes(r.Context(), ingredients)
	if err != nil {
		h.internalError(w, "failed to find possible dishes", err)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

// SearchByIngredients handles POST /api/dishes/ingredients
// Returns dishes containing every supplied ingredient.
func (h *DishHandler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, ok := h.decodeIngredients(w, r)
	if !ok {
		return
	}

	dishes, err := h.service.SearchByIngredients(r.Context(), ingredients)
	if err != nil {
		h.internalError(w, "failed to search by ingredients", err)
		return
	}

	WriteJSON(w, http.StatusOK, dishes, h.logger)
}

func (h *DishHandler) byAttribute(param string, lookup func(ctx context.Context, value string) ([]models.Dish, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value := urlParam(r, param)

		dishes, err := lookup(r.Context(), value)
		if err != nil {
			h.internalError(w, "failed to list dishes by "+param, err)
			return
		}

		WriteJSON(w, http.StatusOK, dishes, h.logger)
	}
}

func (h *DishHandler) decodeIngredients(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req models.IngredientsRequest
	if err := decodeJSON(w, r, &req); err != nil || req.Ingredients == nil {
		h.logger.Warn("invalid ingredients body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ingredients array", h.logger)
		return nil, false
	}
	return req.Ingredients, true
}

func (h *DishHandler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
}

// parsePositiveDefault parses an optional integer query parameter. Empty and
// non-positive values fall back to def; anything that is not an integer is an error.
func parsePositiveDefault(raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return def, nil
	}
	return n, nil
}

// urlParam returns the decoded chi URL parameter. chi matches against
// r.URL.RawPath when it is set, so only then is the segment still escaped.
func urlParam(r *http.Request, key string) string {
	param := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return param
	}
	if decoded, err := url.PathUnescape(param); err == nil {
		return decoded
	}
	return param
}
