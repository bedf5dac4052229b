package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"user-api/pkg/apperr"
)

func wantCode(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if ae.Code != code || (msg != "" && ae.Msg != msg) {
		t.Fatalf("got (%d, %q), want (%d, %q)", ae.Code, ae.Msg, code, msg)
	}
}

func TestRegister_NormalizesAndIssuesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	s, err := f.auth.Register(ctx, RegisterInput{Name: " Ann ", Email: " Ann@Ex.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.User.Email != "ann@ex.com" || s.User.Name != "Ann" {
		t.Fatalf("unexpected user: %+v", s.User)
	}
	id, err := f.jwt.Verify(s.AccessToken)
	if err != nil || id != s.User.ID {
		t.Fatalf("token resolves to %d (%v), want %d", id, err, s.User.ID)
	}
	stored := f.repo.byID[s.User.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatalf("password not hashed: %q", stored.PasswordHash)
	}

	if _, err := f.auth.Login(ctx, LoginInput{Email: "ANN@EX.COM", Password: "secret1"}); err != nil {
		t.Fatalf("login with different casing: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture()
	cases := []struct {
		name string
		in   RegisterInput
		msg  string
	}{
		{"empty", RegisterInput{}, msgRequired},
		{"blank name", RegisterInput{Name: "   ", Email: "a@b.c", Password: "secret1"}, msgRequired},
		{"blank email", RegisterInput{Name: "A", Email: " ", Password: "secret1"}, msgRequired},
		{"no password", RegisterInput{Name: "A", Email: "a@b.c"}, msgRequired},
		{"short password", RegisterInput{Name: "A", Email: "a@b.c", Password: "12345"}, msgPasswordShort},
		{"too long", RegisterInput{Name: "A", Email: "a@b.c", Password: strings.Repeat("p", 73)}, msgPasswordLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), tc.in)
			wantCode(t, err, http.StatusBadRequest, tc.msg)
		})
	}
	if len(f.repo.byID) != 0 {
		t.Fatalf("validation failures must not write, got %d rows", len(f.repo.byID))
	}
}

func TestRegister_PasswordBoundary(t *testing.T) {
	f := newFixture()
	if _, err := f.auth.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "123456"}); err != nil {
		t.Fatalf("6-char password rejected: %v", err)
	}
	// 按字符计数：6 个多字节字符合法
	if _, err := f.auth.Register(context.Background(), RegisterInput{Name: "B", Email: "b@b.c", Password: "密码密码密码"}); err != nil {
		t.Fatalf("6-rune password rejected: %v", err)
	}
}

func TestRegister_DuplicateNormalizedEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "dup@ex.com", Password: "secret1"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	for _, email := range []string{"dup@ex.com", " DUP@ex.com", "Dup@Ex.Com  "} {
		_, err := f.auth.Register(ctx, RegisterInput{Name: "B", Email: email, Password: "secret2"})
		wantCode(t, err, http.StatusConflict, msgEmailTaken)
	}
	if len(f.repo.byID) != 1 {
		t.Fatalf("expected one row, got %d", len(f.repo.byID))
	}
}

func TestRegister_StoreFault(t *testing.T) {
	f := newFixture()
	f.repo.err = errors.New("connection refused")
	_, err := f.auth.Register(context.Background(), RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1"})
	if apperr.CodeOf(err) != http.StatusInternalServerError || !errors.Is(err, f.repo.err) {
		t.Fatalf("expected wrapped store fault, got %v", err)
	}
}

func TestLogin_UniformFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	if _, err := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPw := f.auth.Login(ctx, LoginInput{Email: "a@b.c", Password: "secret2"})
	_, noUser := f.auth.Login(ctx, LoginInput{Email: "nobody@b.c", Password: "secret1"})
	wantCode(t, wrongPw, http.StatusUnauthorized, msgBadCredentials)
	wantCode(t, noUser, http.StatusUnauthorized, msgBadCredentials)
	if wrongPw.Error() != noUser.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPw, noUser)
	}
}

func TestLogin_Validation(t *testing.T) {
	f := newFixture()
	for _, in := range []LoginInput{{}, {Email: "a@b.c"}, {Password: "secret1"}, {Email: "  ", Password: "x"}} {
		_, err := f.auth.Login(context.Background(), in)
		wantCode(t, err, http.StatusBadRequest, msgLoginRequired)
	}
}

func TestLogin_TokenBindsOwnIdentity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	a, _ := f.auth.Register(ctx, RegisterInput{Name: "A", Email: "a@b.c", Password: "secret1"})
	b, _ := f.auth.Register(ctx, RegisterInput{Name: "B", Email: "b@b.c", Password: "secret1"})

	la, err := f.auth.Login(ctx, LoginInput{Email: "a@b.c", Password: "secret1"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	id, err := f.jwt.Verify(la.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id != a.User.ID || id == b.User.ID {
		t.Fatalf("token for A resolved to %d (A=%d, B=%d)", id, a.User.ID, b.User.ID)
	}
}
