// Package exerciselog содержит бизнес-логику журнала упражнений:
// добавление записи с сохранением порядка по дате и чтение журнала.
package exerciselog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/exercise-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/observability"
)

// LogRepository определяет методы хранилища, нужные журналу упражнений.
type LogRepository interface {
	// FindByShortID возвращает пользователя по его shortId.
	FindByShortID(ctx context.Context, shortID string) (*models.User, error)
	// SaveExercises перезаписывает журнал упражнений пользователя.
	SaveExercises(ctx context.Context, shortID string, entries []models.Exercise) error
}

// Cache описывает методы для кеширования журналов.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventPublisher публикует события приложения.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику журнала упражнений, включая кеширование.
type Service struct {
	repo   LogRepository
	cache  Cache
	events EventPublisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo LogRepository, cache Cache, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		events: events,
		log:    log,
	}
}

// AddedEvent сообщение о добавленном упражнении.
type AddedEvent struct {
	ShortID     string     `json:"short_id"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Date        *time.Time `json:"date,omitempty"`
}

// Add вставляет активность в журнал пользователя, сохраняя порядок по
// возрастанию даты, и сохраняет обновлённый журнал. Политика вставки:
//
//  1. В пустой журнал активность добавляется единственным элементом.
//  2. Если текущая первая запись журнала без даты, новая активность встаёт
//     в начало независимо от собственной даты. Поведение унаследовано от
//     исходной системы и закреплено тестами.
//  3. Недатированная активность упорядочивается раньше любой датированной.
//  4. Иначе активность встаёт перед первой записью со строго большей датой,
//     а если таких нет — в конец.
//
// Возвращает ошибку хранилища ErrUserNotFound, если пользователь не найден.
func (s *Service) Add(ctx context.Context, shortID string, activity models.Exercise) (*models.User, error) {
	u, err := s.repo.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}

	u.Exercise = insertByDate(u.Exercise, activity)
	if err := s.repo.SaveExercises(ctx, shortID, u.Exercise); err != nil {
		return nil, err
	}

	cacheKey := logCacheKey(shortID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate log cache", slog.String("key", cacheKey), sl.Err(err))
	}

	s.log.Info("added exercise",
		slog.String("short_id", shortID),
		slog.Int("log_size", len(u.Exercise)))
	observability.RecordExerciseLogged()

	if err := s.events.Publish("exercise.added", AddedEvent{
		ShortID:     shortID,
		Description: activity.Description,
		Duration:    activity.Duration,
		Date:        activity.Date,
	}); err != nil {
		s.log.Warn("failed to publish exercise.added", sl.Err(err))
	}

	return u, nil
}

// Log возвращает журнал упражнений пользователя, используя кеш или хранилище.
func (s *Service) Log(ctx context.Context, shortID string) ([]models.Exercise, error) {
	cacheKey := logCacheKey(shortID)

	var entries []models.Exercise
	found, err := s.cache.Get(cacheKey, &entries)
	if err != nil {
		s.log.Warn("failed to read log cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return entries, nil
	}

	u, err := s.repo.FindByShortID(ctx, shortID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, u.Exercise, time.Hour); err != nil {
		s.log.Warn("failed to cache log", slog.String("key", cacheKey), sl.Err(err))
	}
	return u.Exercise, nil
}

func logCacheKey(shortID string) string {
	return fmt.Sprintf("log:%s", shortID)
}

// insertByDate возвращает журнал с активностью, вставленной по политике
// из комментария к Add. Исходный срез не переиспользуется позиционно:
// вставка в середину копирует хвост.
func insertByDate(entries []models.Exercise, activity models.Exercise) []models.Exercise {
	if len(entries) == 0 {
		return []models.Exercise{activity}
	}
	if entries[0].Date == nil {
		return append([]models.Exercise{activity}, entries...)
	}
	if activity.Date == nil {
		return append([]models.Exercise{activity}, entries...)
	}
	for i := range entries {
		if entries[i].Date != nil && activity.Date.Before(*entries[i].Date) {
			out := make([]models.Exercise, 0, len(entries)+1)
			out = append(out, entries[:i]...)
			out = append(out, activity)
			out = append(out, entries[i:]...)
			return out
		}
	}
	return append(entries, activity)
}
