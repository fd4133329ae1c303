// Package user содержит бизнес-логику регистрации пользователей.
package user

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/exercise-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/observability"
)

// UserRepository определяет методы хранилища, нужные для регистрации.
type UserRepository interface {
	// CreateUser атомарно создает пользователя с пустым журналом упражнений.
	CreateUser(ctx context.Context, username string) (*models.User, error)
}

// EventPublisher публикует события приложения.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo   UserRepository
	events EventPublisher
	log    *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo UserRepository, events EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// RegisteredEvent сообщение о регистрации нового пользователя.
type RegisteredEvent struct {
	ShortID  string `json:"short_id"`
	Username string `json:"username"`
}

// Register создает нового пользователя с указанным именем.
// Имя не валидируется: пустая строка принимается как есть.
// Если имя уже занято, возвращает ошибку хранилища ErrUsernameTaken;
// проверка занятости и вставка атомарны на уровне хранилища.
func (s *Service) Register(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repo.CreateUser(ctx, username)
	if err != nil {
		return nil, err
	}

	s.log.Info("registered new user",
		slog.String("username", u.Username),
		slog.String("short_id", u.ShortID))
	observability.RecordUserRegistered()

	if err := s.events.Publish("user.registered", RegisteredEvent{
		ShortID:  u.ShortID,
		Username: u.Username,
	}); err != nil {
		s.log.Warn("failed to publish user.registered", sl.Err(err))
	}

	return u, nil
}
