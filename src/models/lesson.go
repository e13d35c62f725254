package models

import "time"

type Lesson struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Content          string    `json:"content"`
	DifficultyLevel  string    `json:"difficulty_level"`
	Category         string    `json:"category"`
	OrderIndex       int       `json:"order_index"`
	EstimatedMinutes int       `json:"estimated_minutes"`
	CreatedAt        time.Time `json:"created_at"`
	Completed        bool      `json:"completed"`
	Score            *int      `json:"score"`
}

type UserProgress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	LessonID    int64      `json:"lesson_id"`
	Completed   bool       `json:"completed"`
	Score       *int       `json:"score"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type ProgressOverview struct {
	Progress         []UserProgress `json:"progress"`
	CompletedLessons int            `json:"completed_lessons"`
	TotalLessons     int            `json:"total_lessons"`
	AverageScore     *float64       `json:"average_score"`
}

func NewProgressOverview(progress []UserProgress, totalLessons int) ProgressOverview {
	if progress == nil {
		progress = []UserProgress{}
	}
	overview := ProgressOverview{Progress: progress, TotalLessons: totalLessons}
	var scored, sum int
	for _, p := range progress {
		if p.Completed {
			overview.CompletedLessons++
		}
		if p.Score != nil {
			scored++
			sum += *p.Score
		}
	}
	if scored > 0 {
		avg := float64(sum) / float64(scored)
		overview.AverageScore = &avg
	}
	return overview
}

func ValidDifficulty(level string) bool {
	switch level {
	case "beginner", "intermediate", "advanced":
		return true
	}
	return false
}
