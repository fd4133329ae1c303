package models

import "time"

// Exercise представляет одну записанную активность пользователя.
// Date может быть nil — такая запись считается недатированной
// и при вставке помещается в начало журнала.
type Exercise struct {
	Description string     `json:"description"`    // Описание активности
	Duration    int        `json:"duration"`       // Длительность в минутах
	Date        *time.Time `json:"date,omitempty"` // Дата активности (nil — без даты)
}

// DummyExercise используется для приёма данных формы добавления упражнения
// до их валидации и преобразования в Exercise. Дата приходит строкой:
// пустое или нераспознанное значение означает недатированную запись.
type DummyExercise struct {
	UserID      string `validate:"required"`         // shortId пользователя
	Description string `validate:"omitempty"`        // Описание активности
	Duration    string `validate:"required,numeric"` // Длительность в минутах
	Date        string `validate:"omitempty"`        // Дата в формате 2006-01-02
}
