package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/s155003/Budgetly/src/models"
)

const categoryTTL = 10 * time.Minute

// Cache holds rows that rarely change: the lesson catalogue and each user's
// visible categories.
type Cache struct {
	store *ristretto.Cache

	// generations counts category invalidations per user. A list read from the
	// database is only stored if no invalidation happened since the read began.
	mu          sync.Mutex
	generations map[int64]uint64
}

func New() (*Cache, error) {
	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &Cache{store: store, generations: make(map[int64]uint64)}, nil
}

func categoryKey(userID int64) string {
	return fmt.Sprintf("categories:%d", userID)
}

const lessonsKey = "lessons"

func lessonKey(lessonID int64) string {
	return fmt.Sprintf("lesson:%d", lessonID)
}

// Categories returns the cached category list of a user, if present, and the
// generation to hand back to SetCategories after a database read.
func (c *Cache) Categories(userID int64) ([]models.Category, uint64, bool) {
	c.mu.Lock()
	gen := c.generations[userID]
	c.mu.Unlock()

	v, ok := c.store.Get(categoryKey(userID))
	if !ok {
		return nil, gen, false
	}
	categories, ok := v.([]models.Category)
	return categories, gen, ok
}

// SetCategories stores a list read at generation gen. It is dropped when the
// user's categories changed in the meantime.
func (c *Cache) SetCategories(userID int64, gen uint64, categories []models.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != gen {
		return
	}
	c.store.SetWithTTL(categoryKey(userID), categories, 1, categoryTTL)
}

// DelCategories drops a user's list after they add or remove a category. It
// waits for the write buffer so a pending Set cannot resurrect the old list.
func (c *Cache) DelCategories(userID int64) {
	c.mu.Lock()
	c.generations[userID]++
	c.mu.Unlock()

	c.store.Del(categoryKey(userID))
	c.store.Wait()
}

// Lessons returns the cached catalogue without per-user annotations.
func (c *Cache) Lessons() ([]models.Lesson, bool) {
	v, ok := c.store.Get(lessonsKey)
	if !ok {
		return nil, false
	}
	lessons, ok := v.([]models.Lesson)
	return lessons, ok
}

func (c *Cache) SetLessons(lessons []models.Lesson) {
	c.store.Set(lessonsKey, lessons, 1)
}

func (c *Cache) Lesson(lessonID int64) (*models.Lesson, bool) {
	v, ok := c.store.Get(lessonKey(lessonID))
	if !ok {
		return nil, false
	}
	lesson, ok := v.(models.Lesson)
	if !ok {
		return nil, false
	}
	return &lesson, true
}

func (c *Cache) SetLesson(lesson models.Lesson) {
	c.store.Set(lessonKey(lesson.ID), lesson, 1)
}

func (c *Cache) Close() {
	c.store.Close()
}
