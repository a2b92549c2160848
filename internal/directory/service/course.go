package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
	"github.com/NotFromFatec/Carometro-V2/internal/directory/store"
	"github.com/NotFromFatec/Carometro-V2/pkg/idx"
	"github.com/NotFromFatec/Carometro-V2/pkg/slogx"
)

var ErrCourseExists = errors.New("course already exists")

type CourseService struct {
	Store store.Store
}

// CreateCourse registers a course name alumni can attach to their profiles.
func (s *CourseService) CreateCourse(ctx context.Context, name string) (domain.Course, error) {
	log := slogx.FromContext(ctx)

	if name == "" {
		return domain.Course{}, ErrInvalidRequest
	}

	course := domain.Course{
		ID:        idx.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Courses().CreateCourse(ctx, course); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Course{}, ErrCourseExists
		}
		log.Error("failed to create course", slog.Any("error", err))
		return domain.Course{}, err
	}

	log.Info("course created", slog.String("course_id", course.ID), slog.String("name", name))
	return course, nil
}

func (s *CourseService) ListCourses(ctx context.Context) ([]domain.Course, error) {
	return s.Store.Courses().ListCourses(ctx)
}
