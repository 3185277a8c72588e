package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Totarae/LinkCut/internal/auth"
	"github.com/Totarae/LinkCut/internal/codegen"
	"github.com/Totarae/LinkCut/internal/model"
	"github.com/Totarae/LinkCut/internal/service"
	"github.com/Totarae/LinkCut/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler содержит HTTP-обработчики сервиса. Состояния между
// запросами нет — только внедрённые зависимости.
type Handler struct {
	Links  *service.LinkService
	Auth   *service.AuthService
	Logger *zap.Logger
}

// NewHandler создаёт обработчики поверх сервисов.
func NewHandler(links *service.LinkService, authSvc *service.AuthService, logger *zap.Logger) *Handler {
	return &Handler{Links: links, Auth: authSvc, Logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("Не удалось записать ответ", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

// internalError логирует причину и отдаёт клиенту общий 500 без деталей.
func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.Logger.Error("Внутренняя ошибка", zap.String("op", op), zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, "internal error")
}

// ReceiveShorten обрабатывает POST /api/v1/shortlinks.
// Валидный bearer-токен делает ссылку именной, без него создание анонимное.
func (h *Handler) ReceiveShorten(w http.ResponseWriter, r *http.Request) {
	var req model.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	userID, _ := auth.UserID(r.Context())

	link, err := h.Links.Create(r.Context(), req.URL, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidURL):
			h.writeError(w, http.StatusBadRequest, "invalid url")
		case errors.Is(err, service.ErrExhausted):
			h.writeError(w, http.StatusServiceUnavailable, "try again later")
		default:
			h.internalError(w, "create shortlink", err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, model.ShortenResponse{
		Code:     link.Code,
		ShortURL: h.Links.ShortURL(link.Code),
	})
}

// ResponseURL обрабатывает GET /{code}: 302 с Location либо 404.
// Сервис отвечает за один переход и сам по ссылке не ходит.
func (h *Handler) ResponseURL(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if !codegen.Valid(code) {
		http.NotFound(w, r)
		return
	}

	origin, err := h.Links.Resolve(r.Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrLinkNotFound) {
			http.NotFound(w, r)
			return
		}
		h.internalError(w, "resolve shortlink", err)
		return
	}

	w.Header().Set("Location", origin)
	w.WriteHeader(http.StatusFound)
}

// RegisterUser обрабатывает POST /api/v1/register.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	userID, err := h.Auth.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidUsername), errors.Is(err, service.ErrInvalidPassword):
			h.writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrUsernameTaken):
			h.writeError(w, http.StatusConflict, "username already taken")
		case errors.Is(err, service.ErrHashTimeout):
			h.writeError(w, http.StatusServiceUnavailable, "try again later")
		default:
			h.internalError(w, "register user", err)
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, model.RegisterResponse{
		ID:       userID,
		Username: req.Username,
	})
}

// LoginUser обрабатывает POST /api/v1/login.
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	token, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.writeError(w, http.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, service.ErrHashTimeout):
			h.writeError(w, http.StatusServiceUnavailable, "try again later")
		default:
			h.internalError(w, "login user", err)
		}
		return
	}

	h.writeJSON(w, http.StatusOK, model.LoginResponse{Token: token})
}

// UserLinks обрабатывает GET /api/v1/users/mine.
// Маршрут закрыт AuthRequired, identity уже в контексте.
func (h *Handler) UserLinks(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		h.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	links, err := h.Links.ListByOwner(r.Context(), userID)
	if err != nil {
		h.internalError(w, "list user links", err)
		return
	}

	results := make([]model.UserLink, 0, len(links))
	for _, link := range links {
		results = append(results, model.UserLink{
			Code:    link.Code,
			URL:     link.Origin,
			Created: link.Created,
		})
	}
	h.writeJSON(w, http.StatusOK, results)
}

// Ping обрабатывает GET /ping — проверка доступности хранилища.
func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	if err := h.Links.Ping(r.Context()); err != nil {
		h.internalError(w, "ping storage", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
