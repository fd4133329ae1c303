package exerciselog

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// MockRepository реализует интерфейс LogRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByShortID(ctx context.Context, shortID string) (*models.User, error) {
	args := m.Called(ctx, shortID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) SaveExercises(ctx context.Context, shortID string, entries []models.Exercise) error {
	args := m.Called(ctx, shortID, entries)
	return args.Error(0)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if entries, ok := args.Get(0).([]models.Exercise); ok {
		*(result.(*[]models.Exercise)) = entries
		return true, args.Error(1)
	}
	return false, args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockPublisher реализует интерфейс EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, message any) error {
	args := m.Called(routingKey, message)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func date(value string) *time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestInsertByDate(t *testing.T) {
	tests := []struct {
		name      string
		entries   []models.Exercise
		activity  models.Exercise
		wantOrder []string
	}{
		{
			name:      "вставка в пустой журнал",
			entries:   nil,
			activity:  models.Exercise{Description: "run", Date: date("2023-01-10")},
			wantOrder: []string{"run"},
		},
		{
			name: "вставка в середину по дате",
			entries: []models.Exercise{
				{Description: "a", Date: date("2023-01-01")},
				{Description: "c", Date: date("2023-03-01")},
			},
			activity:  models.Exercise{Description: "b", Date: date("2023-02-01")},
			wantOrder: []string{"a", "b", "c"},
		},
		{
			name: "вставка в конец при самой поздней дате",
			entries: []models.Exercise{
				{Description: "a", Date: date("2023-01-01")},
				{Description: "b", Date: date("2023-02-01")},
			},
			activity:  models.Exercise{Description: "c", Date: date("2023-03-01")},
			wantOrder: []string{"a", "b", "c"},
		},
		{
			name: "вставка в конец при равной дате",
			entries: []models.Exercise{
				{Description: "a", Date: date("2023-01-01")},
			},
			activity:  models.Exercise{Description: "b", Date: date("2023-01-01")},
			wantOrder: []string{"a", "b"},
		},
		{
			name: "недатированная активность встает в начало",
			entries: []models.Exercise{
				{Description: "a", Date: date("2023-01-01")},
				{Description: "b", Date: date("2023-02-01")},
			},
			activity:  models.Exercise{Description: "undated"},
			wantOrder: []string{"undated", "a", "b"},
		},
		{
			name: "датированная активность встает в начало перед недатированной головой",
			entries: []models.Exercise{
				{Description: "undated"},
				{Description: "a", Date: date("2023-01-01")},
			},
			activity:  models.Exercise{Description: "late", Date: date("2023-12-31")},
			wantOrder: []string{"late", "undated", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := insertByDate(tt.entries, tt.activity)

			require.Len(t, got, len(tt.wantOrder))
			for i, desc := range tt.wantOrder {
				assert.Equal(t, desc, got[i].Description, "position %d", i)
			}
		})
	}
}

// Журнал остается отсортированным по возрастанию даты после каждой вставки,
// пока первая запись датирована.
func TestInsertByDate_KeepsAscendingOrder(t *testing.T) {
	activities := []models.Exercise{
		{Description: "d3", Date: date("2023-03-01")},
		{Description: "d1", Date: date("2023-01-01")},
		{Description: "d4", Date: date("2023-04-01")},
		{Description: "d2", Date: date("2023-02-01")},
	}

	var entries []models.Exercise
	for _, a := range activities {
		entries = insertByDate(entries, a)
		for i := 1; i < len(entries); i++ {
			assert.False(t, entries[i].Date.Before(*entries[i-1].Date),
				"log out of order after inserting %s", a.Description)
		}
	}
	assert.Len(t, entries, 4)
}

func TestAdd_Success(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	existing := &models.User{
		ShortID:  "ab12cd34",
		Username: "alice",
		Exercise: []models.Exercise{
			{Description: "walk", Duration: 15, Date: date("2023-01-05")},
		},
	}
	repo.On("FindByShortID", mock.Anything, "ab12cd34").Return(existing, nil)
	repo.On("SaveExercises", mock.Anything, "ab12cd34", mock.MatchedBy(func(entries []models.Exercise) bool {
		return len(entries) == 2 && entries[1].Description == "run"
	})).Return(nil)
	cache.On("Invalidate", "log:ab12cd34").Return(nil)
	events.On("Publish", "exercise.added", mock.Anything).Return(nil)

	svc := New(repo, cache, events, newTestLogger())
	got, err := svc.Add(context.Background(), "ab12cd34",
		models.Exercise{Description: "run", Duration: 30, Date: date("2023-01-10")})

	require.NoError(t, err)
	assert.Len(t, got.Exercise, 2)
	assert.Equal(t, "run", got.Exercise[1].Description)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestAdd_UserNotFound(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	repo.On("FindByShortID", mock.Anything, "nope").Return(nil, repository.ErrUserNotFound)

	svc := New(repo, cache, events, newTestLogger())
	_, err := svc.Add(context.Background(), "nope", models.Exercise{Description: "run"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	// Хранилище не изменяется
	repo.AssertNotCalled(t, "SaveExercises", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdd_SaveErrorPropagated(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	existing := &models.User{ShortID: "ab12cd34", Username: "alice"}
	repo.On("FindByShortID", mock.Anything, "ab12cd34").Return(existing, nil)
	repo.On("SaveExercises", mock.Anything, "ab12cd34", mock.Anything).
		Return(errors.New("connection reset"))

	svc := New(repo, cache, events, newTestLogger())
	_, err := svc.Add(context.Background(), "ab12cd34", models.Exercise{Description: "run"})

	require.Error(t, err)
	events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestLog_CacheHit(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	cached := []models.Exercise{{Description: "run", Duration: 30, Date: date("2023-01-10")}}
	cache.On("Get", "log:ab12cd34", mock.Anything).Return(cached, nil)

	svc := New(repo, cache, events, newTestLogger())
	got, err := svc.Log(context.Background(), "ab12cd34")

	require.NoError(t, err)
	assert.Equal(t, cached, got)
	repo.AssertNotCalled(t, "FindByShortID", mock.Anything, mock.Anything)
}

func TestLog_CacheMiss(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	cache.On("Get", "log:ab12cd34", mock.Anything).Return(nil, nil)
	u := &models.User{
		ShortID:  "ab12cd34",
		Username: "alice",
		Exercise: []models.Exercise{{Description: "run", Duration: 30, Date: date("2023-01-10")}},
	}
	repo.On("FindByShortID", mock.Anything, "ab12cd34").Return(u, nil)
	cache.On("Set", "log:ab12cd34", u.Exercise, time.Hour).Return(nil)

	svc := New(repo, cache, events, newTestLogger())
	got, err := svc.Log(context.Background(), "ab12cd34")

	require.NoError(t, err)
	assert.Equal(t, u.Exercise, got)
	cache.AssertExpectations(t)
}

func TestLog_UserNotFound(t *testing.T) {
	repo := new(MockRepository)
	cache := new(MockCache)
	events := new(MockPublisher)

	cache.On("Get", "log:nope", mock.Anything).Return(nil, nil)
	repo.On("FindByShortID", mock.Anything, "nope").Return(nil, repository.ErrUserNotFound)

	svc := New(repo, cache, events, newTestLogger())
	_, err := svc.Log(context.Background(), "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
}
