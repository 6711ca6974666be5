package repositories_test

import (
	"testing"
	"time"

	"task-management-api/config"
	"task-management-api/models"
	"task-management-api/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A pooled :memory: connection would open a second, empty database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.MigrateSchema(db))
	return db
}

func mustCreateTask(t *testing.T, db *gorm.DB, title string, priority int, completed bool, tagNames []string, createdAt time.Time) *models.Task {
	t.Helper()

	tagRepo := repositories.NewTagRepository()
	taskRepo := repositories.NewTaskRepository()

	task := &models.Task{
		Title:     title,
		Priority:  priority,
		DueDate:   time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Completed: completed,
		CreatedAt: createdAt,
	}

	if len(tagNames) > 0 {
		tags, err := tagRepo.GetOrCreate(db, tagNames)
		require.NoError(t, err)
		task.Tags = tags
	}

	require.NoError(t, taskRepo.Create(db, task))
	return task
}

func TestTaskRepository_CreateAndGetByID(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	created := mustCreateTask(t, db, "Write report", 4, false, []string{"work", "urgent"}, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	fetched, err := taskRepo.GetByID(db, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Write report", fetched.Title)
	assert.Equal(t, 4, fetched.Priority)
	assert.False(t, fetched.Completed)
	assert.False(t, fetched.IsDeleted)
	assert.Nil(t, fetched.DeletedAt)

	names := make([]string, 0, len(fetched.Tags))
	for _, tag := range fetched.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"work", "urgent"}, names)
}

func TestTaskRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	_, err := taskRepo.GetByID(db, 9999)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)
}

func TestTaskRepository_SoftDelete(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	task := mustCreateTask(t, db, "Disposable", 1, false, nil, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, taskRepo.SoftDelete(db, task.ID))

	// Hidden from repository reads.
	_, err := taskRepo.GetByID(db, task.ID)
	assert.ErrorIs(t, err, models.ErrTaskNotFound)

	// Still physically present, with the flag/timestamp pair consistent.
	var raw models.Task
	require.NoError(t, db.First(&raw, task.ID).Error)
	assert.True(t, raw.IsDeleted)
	require.NotNil(t, raw.DeletedAt)
	assert.False(t, raw.UpdatedAt.Before(raw.CreatedAt))

	// Not idempotent: the second delete reports NotFound.
	assert.ErrorIs(t, taskRepo.SoftDelete(db, task.ID), models.ErrTaskNotFound)
}

func TestTaskRepository_SoftDeleteUnknownID(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	assert.ErrorIs(t, taskRepo.SoftDelete(db, 424242), models.ErrTaskNotFound)
}

func TestTaskRepository_GetListFilters(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	first := mustCreateTask(t, db, "First", 5, false, []string{"x"}, base)
	second := mustCreateTask(t, db, "Second", 5, true, []string{"y"}, base.Add(time.Second))
	third := mustCreateTask(t, db, "Third", 2, false, []string{"x", "y"}, base.Add(2*time.Second))
	deleted := mustCreateTask(t, db, "Deleted", 5, false, []string{"x"}, base.Add(3*time.Second))
	require.NoError(t, taskRepo.SoftDelete(db, deleted.ID))

	t.Run("deleted tasks are always excluded", func(t *testing.T) {
		tasks, total, err := taskRepo.GetList(db, models.TaskListParams{Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, tasks, 3)
	})

	t.Run("newest first with id tiebreak", func(t *testing.T) {
		tasks, _, err := taskRepo.GetList(db, models.TaskListParams{Limit: 20})
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, third.ID, tasks[0].ID)
		assert.Equal(t, second.ID, tasks[1].ID)
		assert.Equal(t, first.ID, tasks[2].ID)
	})

	t.Run("completed filter", func(t *testing.T) {
		completed := true
		tasks, total, err := taskRepo.GetList(db, models.TaskListParams{Completed: &completed, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, tasks, 1)
		assert.Equal(t, second.ID, tasks[0].ID)
	})

	t.Run("priority filter", func(t *testing.T) {
		priority := 5
		tasks, total, err := taskRepo.GetList(db, models.TaskListParams{Priority: &priority, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, tasks, 2)
	})

	t.Run("tag filter matches any requested tag without duplicates", func(t *testing.T) {
		tasks, total, err := taskRepo.GetList(db, models.TaskListParams{TagNames: []string{"x", "y"}, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, tasks, 3)

		seen := map[uint]int{}
		for _, task := range tasks {
			seen[task.ID]++
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "task %d returned more than once", id)
		}
	})

	t.Run("tag filter combines with other filters", func(t *testing.T) {
		priority := 5
		tasks, total, err := taskRepo.GetList(db, models.TaskListParams{Priority: &priority, TagNames: []string{"x"}, Limit: 20})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, tasks, 1)
		assert.Equal(t, first.ID, tasks[0].ID)
	})

	t.Run("returned tasks are hydrated with tags", func(t *testing.T) {
		tasks, _, err := taskRepo.GetList(db, models.TaskListParams{TagNames: []string{"y"}, Limit: 20})
		require.NoError(t, err)
		for _, task := range tasks {
			assert.NotEmpty(t, task.Tags)
		}
	})
}

func TestTaskRepository_GetListPagination(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		mustCreateTask(t, db, "Task", 3, false, nil, base.Add(time.Duration(i)*time.Second))
	}

	all, total, err := taskRepo.GetList(db, models.TaskListParams{Limit: 4, Offset: 0})
	require.NoError(t, err)
	require.EqualValues(t, 4, total)
	require.Len(t, all, 4)

	pageOne, totalOne, err := taskRepo.GetList(db, models.TaskListParams{Limit: 2, Offset: 0})
	require.NoError(t, err)
	pageTwo, totalTwo, err := taskRepo.GetList(db, models.TaskListParams{Limit: 2, Offset: 2})
	require.NoError(t, err)

	// Total is invariant under the page window.
	assert.EqualValues(t, 4, totalOne)
	assert.EqualValues(t, 4, totalTwo)

	// Windows are disjoint and their union, in order, is the full listing.
	var combined []uint
	for _, task := range append(pageOne, pageTwo...) {
		combined = append(combined, task.ID)
	}
	var expected []uint
	for _, task := range all {
		expected = append(expected, task.ID)
	}
	assert.Equal(t, expected, combined)

	// A window past the end yields no items but the true total.
	empty, totalPast, err := taskRepo.GetList(db, models.TaskListParams{Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.EqualValues(t, 4, totalPast)
}

func TestTaskRepository_ReplaceTags(t *testing.T) {
	db := setupTestDB(t)
	taskRepo := repositories.NewTaskRepository()
	tagRepo := repositories.NewTagRepository()

	task := mustCreateTask(t, db, "Tagged", 3, false, []string{"x", "y"}, time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	replacement, err := tagRepo.GetOrCreate(db, []string{"y", "z"})
	require.NoError(t, err)
	require.NoError(t, taskRepo.ReplaceTags(db, task, replacement))

	fetched, err := taskRepo.GetByID(db, task.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(fetched.Tags))
	for _, tag := range fetched.Tags {
		names = append(names, tag.Name)
	}
	assert.ElementsMatch(t, []string{"y", "z"}, names)

	// Untagging never deletes the tag row itself.
	var count int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "x").Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// Replacing with the empty set clears every association.
	require.NoError(t, taskRepo.ReplaceTags(db, task, nil))
	fetched, err = taskRepo.GetByID(db, task.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.Tags)
}
