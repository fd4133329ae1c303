// Package models содержит доменные структуры пользователя и его журнала
// упражнений, а также вспомогательные типы для приёма данных из form-запросов.
package models

// User представляет зарегистрированного участника.
// Поле Exercise — упорядоченный по возрастанию даты журнал упражнений,
// недатированные записи стоят перед датированными. Порядок значим:
// он используется при фильтрации по периоду и при усечении по count.
type User struct {
	UID      string     // Внутренний идентификатор записи в хранилище
	ShortID  string     // Короткий уникальный идентификатор, генерируется при создании
	Username string     // Имя пользователя (уникальное)
	Exercise []Exercise // Журнал упражнений, отсортирован по дате
}

// DummyUser используется для приёма данных формы регистрации.
// Имя не валидируется по формату: пустая строка принимается как есть.
type DummyUser struct {
	Username string `validate:"omitempty"`
}
