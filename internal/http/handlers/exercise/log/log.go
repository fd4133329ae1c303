// Package log реализует HTTP-обработчик чтения журнала упражнений
// с необязательной фильтрацией по периоду и усечением по количеству.
package log

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/exercise-tracker/internal/http/response"
	"github.com/magabrotheeeer/exercise-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на чтение журнала упражнений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения журнала.
type Service interface {
	Log(ctx context.Context, shortID string) ([]models.Exercise, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать журнал упражнений
// @Description Возвращает журнал пользователя. Параметры from и limit фильтруют по датам, числовой limit усекает результат.
// @Tags Exercises
// @Produce json
// @Param userId path string true "shortId пользователя"
// @Param from query string false "Нижняя граница даты (2006-01-02)"
// @Param limit query string false "Верхняя граница даты или количество записей"
// @Success 200 {object} map[string]any "Журнал упражнений"
// @Failure 404 {string} string "User not found"
// @Failure 500 {object} response.Response "Ошибка хранилища"
// @Router /log/{userId} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.exercise.log"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	shortID := chi.URLParam(r, "userId")

	entries, err := h.service.Log(r.Context(), shortID)
	if errors.Is(err, repository.ErrUserNotFound) {
		log.Info("user not found", slog.String("short_id", shortID))
		w.WriteHeader(http.StatusNotFound)
		render.PlainText(w, r, "User not found")
		return
	}
	if err != nil {
		log.Error("failed to read exercise log", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read exercise log"))
		return
	}

	if len(entries) == 0 {
		render.PlainText(w, r, "User doesn't have exercise registered.")
		return
	}

	results := applyFilter(entries, r.URL.Query().Get("from"), r.URL.Query().Get("limit"))

	log.Info("exercise log read",
		slog.String("short_id", shortID),
		slog.Int("count", len(results)))
	render.JSON(w, r, map[string]any{
		"exercise": results,
	})
}
