package ez

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	mdw "user-api/internal/transport/http/middleware"
	"user-api/pkg/apperr"
)

func init() { gin.SetMode(gin.TestMode) }

type echoIn struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestRegisterAction_LenientJSON(t *testing.T) {
	r := gin.New()
	RegisterAction(New(&r.RouterGroup), Action[echoIn, echoIn]{
		Methods: []string{http.MethodPost, http.MethodPut},
		Path:    "/echo",
		Binder:  BindJSON,
		Status:  http.StatusCreated,
		Handler: func(_ *gin.Context, in *echoIn) (echoIn, error) { return *in, nil },
	})

	cases := map[string]string{
		`{"name":"a","age":3}`:   `{"name":"a","age":3}`,
		`{"name":"a","age":"x"}`: `{"name":"","age":0}`, // 类型错误整体丢弃
		`not json`:               `{"name":"","age":0}`,
		``:                       `{"name":"","age":0}`,
	}
	for body, want := range cases {
		for _, m := range []string{http.MethodPost, http.MethodPut} {
			w := serve(r, m, "/echo", body)
			if w.Code != http.StatusCreated || w.Body.String() != want {
				t.Fatalf("%s %q: got %d %s, want %s", m, body, w.Code, w.Body.String(), want)
			}
		}
	}
}

func TestRegisterAction_ErrorMapping(t *testing.T) {
	r := gin.New()
	errs := map[string]error{
		"/conflict": apperr.Conflict("email already registered"),
		"/wrapped":  errors.Join(errors.New("ctx"), apperr.NotFound("user not found")),
		"/fault":    errors.New("dial tcp: connection refused"),
	}
	for path, e := range errs {
		e := e
		RegisterAction(New(&r.RouterGroup), Action[struct{}, struct{}]{
			Methods: []string{http.MethodGet},
			Path:    path,
			Binder:  BindNone,
			Handler: func(*gin.Context, *struct{}) (struct{}, error) { return struct{}{}, e },
		})
	}

	cases := map[string]struct {
		code int
		body string
	}{
		"/conflict": {http.StatusConflict, `{"error":"email already registered"}`},
		"/wrapped":  {http.StatusNotFound, `{"error":"user not found"}`},
		"/fault":    {http.StatusInternalServerError, `{"error":"internal error"}`},
	}
	for path, want := range cases {
		w := serve(r, http.MethodGet, path, "")
		if w.Code != want.code || w.Body.String() != want.body {
			t.Fatalf("%s: got %d %s, want %d %s", path, w.Code, w.Body.String(), want.code, want.body)
		}
	}
}

func TestRegisterAction_AuthRequiresIdentity(t *testing.T) {
	r := gin.New()
	g := r.Group("")
	g.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-User") != "" {
			c.Set(mdw.KeyUserID, uint(5))
		}
	})
	RegisterAction(New(g), Action[struct{}, gin.H]{
		Methods: []string{http.MethodGet},
		Path:    "/me",
		Auth:    true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			uid, _ := mdw.UserID(c)
			return gin.H{"id": uid}, nil
		},
	})

	w := serve(r, http.MethodGet, "/me", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: %d", w.Code)
	}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Test-User", "1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != `{"id":5}` {
		t.Fatalf("authenticated: %d %s", w.Code, w.Body.String())
	}
}
