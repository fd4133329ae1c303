// Package observability содержит метрики Prometheus приложения.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersRegisteredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "users",
		Name:      "registered_total",
		Help:      "Total number of successfully registered users.",
	})
	exercisesLoggedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "exercise_tracker",
		Subsystem: "log",
		Name:      "exercises_total",
		Help:      "Total number of exercises appended to user logs.",
	})
)

func init() {
	prometheus.MustRegister(usersRegisteredCounter, exercisesLoggedCounter)
}

// RecordUserRegistered увеличивает счётчик зарегистрированных пользователей.
func RecordUserRegistered() {
	usersRegisteredCounter.Inc()
}

// RecordExerciseLogged увеличивает счётчик добавленных упражнений.
func RecordExerciseLogged() {
	exercisesLoggedCounter.Inc()
}
