package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/exercise-tracker/internal/models"
)

// uniqueViolation код PostgreSQL для нарушения уникального ограничения.
const uniqueViolation = "23505"

// newShortID генерирует короткий идентификатор пользователя
// из первых восьми hex-символов v4 UUID.
func newShortID() string {
	return uuid.NewString()[:8]
}

// CreateUser атомарно сохраняет нового пользователя с пустым журналом
// упражнений и сгенерированным shortId. Проверка занятости имени и вставка
// выполняются одним условным INSERT, поэтому гонка между двумя
// одновременными регистрациями закрывается на уровне хранилища.
// Если имя уже занято, возвращает ErrUsernameTaken.
func (s *Storage) CreateUser(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (short_id, username, exercise)
			  VALUES ($1, $2, '[]'::jsonb)
			  ON CONFLICT (username) DO NOTHING
			  RETURNING uid`

	// Повторяем вставку при коллизии short_id: идентификатор короткий,
	// столкновение маловероятно, но возможно.
	for range 3 {
		u := &models.User{
			ShortID:  newShortID(),
			Username: username,
			Exercise: []models.Exercise{},
		}
		err := s.DB.QueryRowContext(ctx, query, u.ShortID, u.Username).Scan(&u.UID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return u, nil
	}
	return nil, fmt.Errorf("%s: could not generate unique short id", op)
}

// FindByUsername возвращает пользователя по его имени.
func (s *Storage) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.FindByUsername"
	return s.findOne(ctx, op, `SELECT uid, short_id, username, exercise
			  FROM users
			  WHERE username = $1`, username)
}

// FindByShortID возвращает пользователя по его shortId.
func (s *Storage) FindByShortID(ctx context.Context, shortID string) (*models.User, error) {
	const op = "storage.FindByShortID"
	return s.findOne(ctx, op, `SELECT uid, short_id, username, exercise
			  FROM users
			  WHERE short_id = $1`, shortID)
}

func (s *Storage) findOne(ctx context.Context, op, query, key string) (*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u := &models.User{}
	var rawExercise []byte
	row := s.DB.QueryRowContext(ctx, query, key)
	if err := row.Scan(&u.UID, &u.ShortID, &u.Username, &rawExercise); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(rawExercise, &u.Exercise); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// SaveExercises перезаписывает журнал упражнений пользователя.
// Журнал сохраняется целиком: его порядок — часть сохраняемого значения.
func (s *Storage) SaveExercises(ctx context.Context, shortID string, entries []models.Exercise) error {
	const op = "storage.SaveExercises"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rawExercise, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE users
			  SET exercise = $1
			  WHERE short_id = $2`
	res, err := s.DB.ExecContext(ctx, query, rawExercise, shortID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
