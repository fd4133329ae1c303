// Package add реализует HTTP-обработчик добавления упражнения в журнал
// пользователя.
//
// Handler принимает form-запрос с полями userId, description, duration и
// необязательной датой. Пустая или нераспознанная дата означает
// недатированную запись — такая активность встаёт в начало журнала.
package add

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/exercise-tracker/internal/http/response"
	"github.com/magabrotheeeer/exercise-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на добавление упражнений.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики журнала упражнений.
type Service interface {
	Add(ctx context.Context, shortID string, activity models.Exercise) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить упражнение
// @Description Вставляет активность в журнал пользователя с сохранением порядка по дате.
// @Tags Exercises
// @Accept x-www-form-urlencoded
// @Produce json
// @Param userId formData string true "shortId пользователя"
// @Param description formData string false "Описание активности"
// @Param duration formData string true "Длительность в минутах"
// @Param date formData string false "Дата в формате 2006-01-02"
// @Success 200 {object} map[string]any "Данные добавленного упражнения"
// @Failure 404 {string} string "User not found"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Ошибка хранилища"
// @Router /add_exercise [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exercise.add"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	req := models.DummyExercise{
		UserID:      r.PostFormValue("userId"),
		Description: r.PostFormValue("description"),
		Duration:    r.PostFormValue("duration"),
		Date:        r.PostFormValue("date"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	duration, err := strconv.Atoi(req.Duration)
	if err != nil {
		log.Error("failed to parse duration", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("field Duration can contain only numbers"))
		return
	}

	// Нераспознанная дата означает недатированную запись, а не ошибку.
	var exerciseDate *time.Time
	if req.Date != "" {
		if d, parseErr := time.Parse("2006-01-02", req.Date); parseErr == nil {
			exerciseDate = &d
		}
	}

	activity := models.Exercise{
		Description: req.Description,
		Duration:    duration,
		Date:        exerciseDate,
	}

	u, err := h.service.Add(r.Context(), req.UserID, activity)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.String("short_id", req.UserID))
		w.WriteHeader(http.StatusNotFound)
		render.PlainText(w, r, "User not found")
		return
	}
	if err != nil {
		log.Error("failed to add exercise", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not add exercise"))
		return
	}

	var dateStr string
	if activity.Date != nil {
		dateStr = activity.Date.Format(time.RFC3339)
	}

	log.Info("exercise added", slog.String("short_id", u.ShortID))
	render.JSON(w, r, map[string]any{
		"username":    u.Username,
		"description": activity.Description,
		"duration":    activity.Duration,
		"id":          u.ShortID,
		"date":        dateStr,
	})
}
