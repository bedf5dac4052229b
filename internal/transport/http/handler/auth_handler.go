package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-api/internal/domain"
	"user-api/internal/service"
	httpez "user-api/internal/transport/http/ez"
)

type registerOut struct {
	Message     string            `json:"message"`
	User        domain.PublicUser `json:"user"`
	AccessToken string            `json:"access_token"`
}

type loginOut struct {
	Message     string            `json:"message"`
	AccessToken string            `json:"access_token"`
	User        domain.PublicUser `json:"user"`
}

// AuthHandler /auth/register、/auth/login（公共）
type AuthHandler struct{ svc *service.AuthService }

func NewAuthHandler(svc *service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Priority() int { return 10 }

func (h *AuthHandler) MountAPI(api *gin.RouterGroup) {
	ez := httpez.New(api.Group("/auth"))

	httpez.RegisterAction(ez, httpez.Action[service.RegisterInput, registerOut]{
		Methods: []string{http.MethodPost},
		Path:    "/register",
		Binder:  httpez.BindJSON,
		Status:  http.StatusCreated,
		Handler: func(c *gin.Context, in *service.RegisterInput) (registerOut, error) {
			s, err := h.svc.Register(c.Request.Context(), *in)
			if err != nil {
				return registerOut{}, err
			}
			return registerOut{Message: "registered", User: s.User, AccessToken: s.AccessToken}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[service.LoginInput, loginOut]{
		Methods: []string{http.MethodPost},
		Path:    "/login",
		Binder:  httpez.BindJSON,
		Handler: func(c *gin.Context, in *service.LoginInput) (loginOut, error) {
			s, err := h.svc.Login(c.Request.Context(), *in)
			if err != nil {
				return loginOut{}, err
			}
			return loginOut{Message: "logged_in", AccessToken: s.AccessToken, User: s.User}, nil
		},
	})
}
