package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-campus-api/store"
	"github.com/goliatone/go-campus-api/students"
)

// StudentService is the entity-service contract the student handlers
// consume.
type StudentService interface {
	Create(ctx context.Context, in students.CreateInput) (students.Student, error)
	List(ctx context.Context) ([]students.Student, bool, error)
	Get(ctx context.Context, id string) (students.Student, bool, error)
	Update(ctx context.Context, id string, in students.UpdateInput) (students.Student, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (students.Stats, bool, error)
}

type studentHandler struct {
	service StudentService
	logger  *slog.Logger
}

func (h *studentHandler) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/students", h.create)
	mux.HandleFunc("GET /api/students", h.list)
	mux.HandleFunc("GET /api/students/stats", h.stats)
	mux.HandleFunc("GET /api/students/{id}", h.get)
	mux.HandleFunc("PUT /api/students/{id}", h.update)
	mux.HandleFunc("DELETE /api/students/{id}", h.delete)
}

func (h *studentHandler) fail(w http.ResponseWriter, err error) {
	writeServiceError(w, h.logger, err, "Invalid student ID.", "Student not found.")
}

type createStudentRequest struct {
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	DateOfBirth jsonDate `json:"dateOfBirth"`
}

func (h *studentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	created, err := h.service.Create(r.Context(), students.CreateInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth.Time,
	})
	if err != nil {
		h.fail(w, err)
		return
	}

	writeData(w, http.StatusCreated, "Student created successfully.", created)
}

func (h *studentHandler) list(w http.ResponseWriter, r *http.Request) {
	all, fromCache, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	if len(all) == 0 {
		writeMessage(w, http.StatusNotFound, "No students found.")
		return
	}

	message := "Students retrieved successfully."
	if fromCache {
		message = "Students retrieved successfully from cache."
	}
	writeCollection(w, message, len(all), all)
}

func (h *studentHandler) get(w http.ResponseWriter, r *http.Request) {
	student, fromCache, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, err)
		return
	}

	message := "Student retrieved successfully."
	if fromCache {
		message = "Student retrieved successfully from cache."
	}
	writeData(w, http.StatusOK, message, student)
}

type updateStudentRequest struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	Email       *string   `json:"email"`
	DateOfBirth *jsonDate `json:"dateOfBirth"`
}

func (h *studentHandler) update(w http.ResponseWriter, r *http.Request) {
	var req updateStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	in := students.UpdateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if req.DateOfBirth != nil {
		in.DateOfBirth = &req.DateOfBirth.Time
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeData(w, http.StatusOK, "Student updated successfully.", updated)
}

func (h *studentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		h.fail(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "Student deleted successfully.")
}

func (h *studentHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, fromCache, err := h.service.Stats(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No students found.")
			return
		}
		h.fail(w, err)
		return
	}

	message := "Student statistics retrieved successfully."
	if fromCache {
		message = "Student statistics retrieved successfully from cache."
	}
	writeData(w, http.StatusOK, message, stats)
}
