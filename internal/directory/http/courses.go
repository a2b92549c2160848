package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/service"
	"github.com/NotFromFatec/Carometro-V2/pkg/dirsdk"
	"github.com/NotFromFatec/Carometro-V2/pkg/httpx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

type CoursesHandler struct {
	CourseService *service.CourseService
}

func (h *CoursesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	courses, err := h.CourseService.ListCourses(ctx)
	if err != nil {
		log.Error("course listing failed", "err", err)
		writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Listing failed")
		return
	}

	out := make([]dirsdk.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, dirsdk.CourseResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *CoursesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req dirsdk.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "Invalid JSON body")
		return
	}

	course, err := h.CourseService.CreateCourse(ctx, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, dirsdk.ErrorCodeInvalidRequest, "name is required")
		case errors.Is(err, service.ErrCourseExists):
			writeError(w, http.StatusConflict, dirsdk.ErrorCodeConflict, "Course already exists")
		default:
			log.Error("course creation failed", "err", err)
			writeError(w, http.StatusInternalServerError, dirsdk.ErrorCodeServerError, "Creation failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, dirsdk.CourseResponse{
		ID:        course.ID,
		Name:      course.Name,
		CreatedAt: course.CreatedAt,
	})
}
