package sqlite

import (
	"context"
	"time"

	"github.com/NotFromFatec/Carometro-V2/internal/directory/domain"
)

type coursesRepo struct {
	db dbtx
}

func (r *coursesRepo) CreateCourse(ctx context.Context, c domain.Course) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (id, name, created_at) VALUES (?, ?, ?)`,
		c.ID, c.Name, time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *coursesRepo) ListCourses(ctx context.Context) ([]domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM courses ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Course
	for rows.Next() {
		var c domain.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
