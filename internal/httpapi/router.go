package httpapi

import (
	"log/slog"
	"net/http"
)

// NewHandler assembles the API surface: both entity handlers behind the
// request-logging middleware.
func NewHandler(courseSvc CourseService, studentSvc StudentService, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	(&courseHandler{service: courseSvc, logger: logger}).register(mux)
	(&studentHandler{service: studentSvc, logger: logger}).register(mux)

	return withRequestLogging(mux, logger)
}
