package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-api/internal/domain"
	"user-api/internal/service"
	httpez "user-api/internal/transport/http/ez"
	mdw "user-api/internal/transport/http/middleware"
	resp "user-api/internal/transport/http/response"
)

type updateOut struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// UserHandler /users/me（需登录）
type UserHandler struct {
	svc      *service.UserService
	verifier mdw.TokenVerifier
}

func NewUserHandler(svc *service.UserService, v mdw.TokenVerifier) *UserHandler {
	return &UserHandler{svc: svc, verifier: v}
}

func (h *UserHandler) Priority() int { return 20 }

func (h *UserHandler) MountAPI(api *gin.RouterGroup) {
	g := api.Group("/users")
	g.Use(mdw.AuthJWT(h.verifier))
	ez := httpez.New(g)

	httpez.RegisterAction(ez, httpez.Action[struct{}, domain.PublicUser]{
		Methods: []string{http.MethodGet},
		Path:    "/me",
		Binder:  httpez.BindNone,
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (domain.PublicUser, error) {
			uid, _ := mdw.UserID(c)
			return h.svc.Get(c.Request.Context(), uid)
		},
	})

	httpez.RegisterAction(ez, httpez.Action[domain.UpdateSelfInput, updateOut]{
		Methods: []string{http.MethodPut, http.MethodPatch},
		Path:    "/me",
		Binder:  httpez.BindJSON,
		Auth:    true,
		Handler: func(c *gin.Context, in *domain.UpdateSelfInput) (updateOut, error) {
			uid, _ := mdw.UserID(c)
			u, err := h.svc.Update(c.Request.Context(), uid, *in)
			if err != nil {
				return updateOut{}, err
			}
			return updateOut{Message: "updated", User: u}, nil
		},
	})

	httpez.RegisterAction(ez, httpez.Action[struct{}, resp.MessageBody]{
		Methods: []string{http.MethodDelete},
		Path:    "/me",
		Binder:  httpez.BindNone,
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (resp.MessageBody, error) {
			uid, _ := mdw.UserID(c)
			if err := h.svc.Delete(c.Request.Context(), uid); err != nil {
				return resp.MessageBody{}, err
			}
			return resp.Message("account deleted"), nil
		},
	})
}
