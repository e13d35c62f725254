package cache

import (
	"testing"

	"github.com/s155003/Budgetly/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New()
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestCategoriesPerUser(t *testing.T) {
	c := newCache(t)

	_, gen, ok := c.Categories(1)
	assert.False(t, ok)

	c.SetCategories(1, gen, []models.Category{{ID: 1, Name: "Salary"}})
	c.store.Wait()

	got, _, ok := c.Categories(1)
	require.True(t, ok)
	assert.Equal(t, "Salary", got[0].Name)

	_, _, ok = c.Categories(2)
	assert.False(t, ok)

	c.DelCategories(1)
	_, _, ok = c.Categories(1)
	assert.False(t, ok)
}

func TestSetCategoriesDropsListReadBeforeInvalidation(t *testing.T) {
	c := newCache(t)

	// A reader misses and starts loading from the database.
	_, staleGen, ok := c.Categories(5)
	require.False(t, ok)

	// Meanwhile the user adds a category.
	c.DelCategories(5)

	// The reader finishes with the old list.
	c.SetCategories(5, staleGen, []models.Category{{ID: 1, Name: "Salary"}})
	c.store.Wait()

	_, gen, ok := c.Categories(5)
	assert.False(t, ok)
	assert.NotEqual(t, staleGen, gen)

	c.SetCategories(5, gen, []models.Category{{ID: 1}, {ID: 99, Name: "Pets"}})
	c.store.Wait()

	got, _, ok := c.Categories(5)
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestLessons(t *testing.T) {
	c := newCache(t)

	c.SetLessons([]models.Lesson{{ID: 1}, {ID: 2}})
	c.SetLesson(models.Lesson{ID: 2, Title: "Emergency Fund Essentials"})
	c.store.Wait()

	list, ok := c.Lessons()
	require.True(t, ok)
	assert.Len(t, list, 2)

	lesson, ok := c.Lesson(2)
	require.True(t, ok)
	assert.Equal(t, "Emergency Fund Essentials", lesson.Title)

	// The returned lesson is a copy.
	lesson.Title = "changed"
	again, _ := c.Lesson(2)
	assert.Equal(t, "Emergency Fund Essentials", again.Title)
}
