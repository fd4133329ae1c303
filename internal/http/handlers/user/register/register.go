// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает form-запрос с полем username, создает пользователя через
// сервис и возвращает имя и сгенерированный короткий идентификатор в JSON.
// Занятое имя — не ошибка сервера: возвращается 409 с текстом
// "User already exists".
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/exercise-tracker/internal/http/response"
	"github.com/magabrotheeeer/exercise-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/exercise-tracker/internal/models"
	"github.com/magabrotheeeer/exercise-tracker/internal/storage/repository"
)

// Handler управляет HTTP-запросами на регистрацию пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, username string) (*models.User, error)
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
// @Summary Зарегистрировать пользователя
// @Description Создает пользователя с пустым журналом упражнений. Имя не валидируется по формату.
// @Tags Users
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string false "Имя пользователя"
// @Success 200 {object} map[string]any "username и id созданного пользователя"
// @Failure 409 {string} string "User already exists"
// @Failure 500 {object} response.Response "Ошибка хранилища"
// @Router /new-user [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.register"
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

	req := models.DummyUser{Username: r.PostFormValue("username")}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	u, err := h.service.Register(r.Context(), req.Username)
	if errors.Is(err, repository.ErrUsernameTaken) {
		log.Info("username already taken", slog.String("username", req.Username))
		w.WriteHeader(http.StatusConflict)
		render.PlainText(w, r, "User already exists")
		return
	}
	if err != nil {
		log.Error("failed to register user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}

	log.Info("user registered", slog.String("short_id", u.ShortID))
	render.JSON(w, r, map[string]any{
		"username": u.Username,
		"id":       u.ShortID,
	})
}
