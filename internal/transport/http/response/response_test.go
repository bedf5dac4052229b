package response

import "testing"

func TestError(t *testing.T) {
	if got := Error(CodeNotFound, "user not found").Error; got != "user not found" {
		t.Fatalf("custom msg: %q", got)
	}
	if got := Error(CodeUnauthorized, "").Error; got != "unauthorized" {
		t.Fatalf("default msg: %q", got)
	}
	if got := Error(418, "").Error; got != "internal error" {
		t.Fatalf("unknown code: %q", got)
	}
}
