package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-campus-api/courses"
	"github.com/goliatone/go-campus-api/store"
)

// CourseService is the entity-service contract the course handlers consume.
type CourseService interface {
	Create(ctx context.Context, in courses.CreateInput) (courses.Course, error)
	List(ctx context.Context) ([]courses.Course, bool, error)
	Get(ctx context.Context, id string) (courses.Course, bool, error)
	Update(ctx context.Context, id string, in courses.UpdateInput) (courses.Course, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (courses.Stats, bool, error)
}

type courseHandler struct {
	service CourseService
	logger  *slog.Logger
}

func (h *courseHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/courses", h.create)
	mux.HandleFunc("GET /api/courses", h.list)
	mux.HandleFunc("GET /api/courses/stats", h.stats)
	mux.HandleFunc("GET /api/courses/{id}", h.get)
	mux.HandleFunc("PUT /api/courses/{id}", h.update)
	mux.HandleFunc("DELETE /api/courses/{id}", h.delete)
}

func (h *courseHandler) fail(w http.ResponseWriter, err error) {
	writeServiceError(w, h.logger, err, "Invalid course ID.", "Course not found.")
}

type createCourseRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Instructor  string   `json:"instructor"`
	StartDate   jsonDate `json:"startDate"`
	EndDate     jsonDate `json:"endDate"`
}

func (h *courseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	created, err := h.service.Create(r.Context(), courses.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Instructor:  req.Instructor,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Course created successfully.", created)
}

func (h *courseHandler) list(w http.ResponseWriter, r *http.Request) {
	all, fromCache, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if len(all) == 0 {
		writeMessage(w, http.StatusNotFound, "No courses found.")
		return
	}

	message := "Courses retrieved successfully."
	if fromCache {
		message = "Courses retrieved successfully from cache."
	}
	writeCollection(w, message, len(all), all)
}

func (h *courseHandler) get(w http.ResponseWriter, r *http.Request) {
	course, fromCache, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	message := "Course retrieved successfully."
	if fromCache {
		message = "Course retrieved successfully from cache."
	}
	writeData(w, http.StatusOK, message, course)
}

type updateCourseRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Instructor  *string   `json:"instructor"`
	StartDate   *jsonDate `json:"startDate"`
	EndDate     *jsonDate `json:"endDate"`
}

func (h *courseHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in := courses.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Instructor:  req.Instructor,
	}
	if req.StartDate != nil {
		in.StartDate = &req.StartDate.Time
	}
	if req.EndDate != nil {
		in.EndDate = &req.EndDate.Time
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeData(w, http.StatusOK, "Course updated successfully.", updated)
}

func (h *courseHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Course deleted successfully.")
}

func (h *courseHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, fromCache, err := h.service.Stats(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No courses found.")
			return
		}
		h.fail(w, err)
		return
	}

	message := "Course statistics retrieved successfully."
	if fromCache {
		message = "Course statistics retrieved successfully from cache."
	}
	writeData(w, http.StatusOK, message, stats)
}
