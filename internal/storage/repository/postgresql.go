// Package repository реализует хранилище записей пользователей на основе
// PostgreSQL. Журнал упражнений хранится jsonb-документом внутри записи
// пользователя, поэтому хранилище работает в терминах "найти запись" /
// "сохранить запись", а порядок журнала определяется сервисным слоем.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrUserNotFound возвращается, когда пользователь с указанным
// идентификатором или именем отсутствует в хранилище.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken возвращается, когда имя пользователя уже занято.
var ErrUsernameTaken = errors.New("username already taken")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями и их журналами упражнений.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}
