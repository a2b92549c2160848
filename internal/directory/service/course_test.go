package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	course, err := svc.CreateCourse(ctx, "Análise e Desenvolvimento de Sistemas")
	require.NoError(t, err)
	require.NotEmpty(t, course.ID)

	courses, err := svc.ListCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Análise e Desenvolvimento de Sistemas", courses[0].Name)
}

func TestCreateCourse_Duplicate(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	_, err := svc.CreateCourse(ctx, "DSM")
	require.NoError(t, err)

	_, err = svc.CreateCourse(ctx, "DSM")
	require.ErrorIs(t, err, ErrCourseExists)
}

func TestCreateCourse_EmptyName(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CourseService{Store: st}

	_, err := svc.CreateCourse(ctx, "")
	require.ErrorIs(t, err, ErrInvalidRequest)
}
