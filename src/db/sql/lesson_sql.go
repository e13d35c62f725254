package db

import (
	"context"
	"fmt"

	"github.com/s155003/Budgetly/src/models"
)

const lessonColumns = `l.id, l.title, l.content, l.difficulty_level, l.category, l.order_index, l.estimated_minutes, l.created_at`

func scanLesson(row interface{ Scan(...any) error }, l *models.Lesson, extra ...any) error {
	dest := []any{&l.ID, &l.Title, &l.Content, &l.DifficultyLevel, &l.Category, &l.OrderIndex,
		&l.EstimatedMinutes, timestamp{&l.CreatedAt}}
	return row.Scan(append(dest, extra...)...)
}

// GetLessons lists every lesson in order, annotated with the user's completion and score.
func GetLessons(ctx context.Context, conn Conn, userID int64) ([]models.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `, COALESCE(p.completed, FALSE), p.score
		FROM lessons l
		LEFT JOIN user_progress p ON p.lesson_id = l.id AND p.user_id = $1
		ORDER BY l.order_index, l.id
	`
	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := scanLesson(rows, &l, &l.Completed, &l.Score); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// GetAllLessons returns the static lesson catalogue without per-user data.
func GetAllLessons(ctx context.Context, conn Conn) ([]models.Lesson, error) {
	rows, err := conn.QueryContext(ctx, `SELECT `+lessonColumns+` FROM lessons l ORDER BY l.order_index, l.id`)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := scanLesson(rows, &l); err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

func GetLesson(ctx context.Context, conn Conn, lessonID int64) (*models.Lesson, error) {
	var l models.Lesson
	err := scanLesson(conn.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons l WHERE l.id = $1`, lessonID), &l)
	if err != nil {
		return nil, notFound(err, "get lesson")
	}
	return &l, nil
}

const progressColumns = `id, user_id, lesson_id, completed, score, completed_at, created_at`

func scanProgress(row interface{ Scan(...any) error }, p *models.UserProgress) error {
	return row.Scan(&p.ID, &p.UserID, &p.LessonID, &p.Completed, &p.Score,
		nullTimestamp{&p.CompletedAt}, timestamp{&p.CreatedAt})
}

// UpsertProgress records the user's result for a lesson. completed_at is stamped the
// first time the lesson is completed and cleared if it is marked incomplete again.
// A nil score keeps whatever score was stored before.
func UpsertProgress(ctx context.Context, conn Conn, userID, lessonID int64, completed bool, score *int) (*models.UserProgress, error) {
	query := `
		INSERT INTO user_progress (user_id, lesson_id, completed, score, completed_at)
		VALUES ($1, $2, $3, $4, CASE WHEN $3 THEN CURRENT_TIMESTAMP ELSE NULL END)
		ON CONFLICT (user_id, lesson_id) DO UPDATE SET
			completed = excluded.completed,
			score = COALESCE(excluded.score, user_progress.score),
			completed_at = CASE
				WHEN excluded.completed THEN COALESCE(user_progress.completed_at, excluded.completed_at)
				ELSE NULL
			END
		RETURNING ` + progressColumns

	var p models.UserProgress
	if err := scanProgress(conn.QueryRowContext(ctx, query, userID, lessonID, completed, score), &p); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}
	return &p, nil
}

func GetUserProgress(ctx context.Context, conn Conn, userID int64) ([]models.UserProgress, error) {
	query := `
		SELECT ` + progressColumns + `
		FROM user_progress
		WHERE user_id = $1
		ORDER BY lesson_id
	`
	rows, err := conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	progress := []models.UserProgress{}
	for rows.Next() {
		var p models.UserProgress
		if err := scanProgress(rows, &p); err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}
