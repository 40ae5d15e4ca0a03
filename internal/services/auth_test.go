package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
)

func newAuth(t *testing.T, f *fixture) *authService {
	t.Helper()
	svc := NewAuthService(f.db, f.log, f.users, f.tokens, "test-secret", 15*time.Minute, time.Hour).(*authService)
	svc.bcryptCost = bcrypt.MinCost
	return svc
}

func TestRegisterLoginRefreshLogout(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Username: "river", Email: "River@Example.com", Password: "correct horse"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	if user.Email != "river@example.com" || user.Password == "correct horse" {
		t.Fatalf("unexpected stored user: %+v", user)
	}

	pair, err := svc.LoginUser(ctx, "RIVER@example.com", "correct horse")
	if err != nil {
		t.Fatalf("LoginUser by email: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.ExpiresIn != 900 {
		t.Fatalf("unexpected token pair: %+v", pair)
	}
	if _, err := svc.LoginUser(ctx, "river", "correct horse"); err != nil {
		t.Fatalf("LoginUser by username: %v", err)
	}

	authed, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if ctxutil.UserID(authed) != user.ID {
		t.Fatalf("expected user %s in context", user.ID)
	}
	me, err := svc.CurrentUser(authed)
	if err != nil || me.Username != "river" {
		t.Fatalf("CurrentUser: %+v %v", me, err)
	}

	refreshed, err := svc.RefreshUser(authed)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if refreshed.AccessToken == pair.AccessToken || refreshed.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh must rotate both tokens")
	}
	if _, err := svc.SetContextFromToken(ctx, pair.AccessToken); err == nil {
		t.Fatalf("old access token must be revoked after refresh")
	}

	authed, err = svc.SetContextFromToken(ctx, refreshed.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken(refreshed): %v", err)
	}
	if err := svc.LogoutUser(authed); err != nil {
		t.Fatalf("LogoutUser: %v", err)
	}
	_, err = svc.SetContextFromToken(ctx, refreshed.AccessToken)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestRegisterValidationAndConflict(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Email: "ab@example.com", Password: "password1"}},
		{"username with space", RegisterInput{Username: "a b c", Email: "abc@example.com", Password: "password1"}},
		{"bad email", RegisterInput{Username: "abc", Email: "not-an-email", Password: "password1"}},
		{"short password", RegisterInput{Username: "abc", Email: "abc@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterUser(ctx, tc.in)
			wantStatus(t, err, http.StatusBadRequest)
		})
	}

	in := RegisterInput{Username: "sam", Email: "sam@example.com", Password: "password1"}
	if _, err := svc.RegisterUser(ctx, in); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	_, err := svc.RegisterUser(ctx, RegisterInput{Username: "SAM", Email: "other@example.com", Password: "password1"})
	wantStatus(t, err, http.StatusConflict)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()
	if _, err := svc.RegisterUser(ctx, RegisterInput{Username: "kai", Email: "kai@example.com", Password: "password1"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}

	_, err := svc.LoginUser(ctx, "kai", "wrong-password")
	wantStatus(t, err, http.StatusUnauthorized)
	_, err = svc.LoginUser(ctx, "nobody", "password1")
	wantStatus(t, err, http.StatusUnauthorized)
	_, err = svc.LoginUser(ctx, "", "")
	wantStatus(t, err, http.StatusBadRequest)
}

func TestSetContextFromTokenRejects(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()

	_, err := svc.SetContextFromToken(ctx, "")
	wantStatus(t, err, http.StatusUnauthorized)
	_, err = svc.SetContextFromToken(ctx, "not.a.jwt")
	wantStatus(t, err, http.StatusUnauthorized)

	if _, err := svc.RegisterUser(ctx, RegisterInput{Username: "lee", Email: "lee@example.com", Password: "password1"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := svc.LoginUser(ctx, "lee", "password1")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	other := newAuth(t, f)
	other.jwtSecretKey = "different"
	_, err = other.SetContextFromToken(ctx, pair.AccessToken)
	wantStatus(t, err, http.StatusUnauthorized)

	expired := newAuth(t, f)
	expired.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = expired.SetContextFromToken(ctx, pair.AccessToken)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestSetContextFromTokenRejectsInactiveUser(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()

	user, err := svc.RegisterUser(ctx, RegisterInput{Username: "dana", Email: "dana@example.com", Password: "password1"})
	if err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := svc.LoginUser(ctx, "dana", "password1")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	authed, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	if rd := ctxutil.GetRequestData(authed); rd == nil || rd.Username != "dana" {
		t.Fatalf("request data: %+v", rd)
	}

	if err := f.users.SetActive(dbctx.Context{Ctx: ctx}, user.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	_, err = svc.SetContextFromToken(ctx, pair.AccessToken)
	wantStatus(t, err, http.StatusUnauthorized)
}

func TestSetContextFromTokenStoreFailure(t *testing.T) {
	f := newFixture(t)
	svc := newAuth(t, f)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, RegisterInput{Username: "kit", Email: "kit@example.com", Password: "password1"}); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	pair, err := svc.LoginUser(ctx, "kit", "password1")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	sqlDB, err := f.db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	_ = sqlDB.Close()

	_, err = svc.SetContextFromToken(ctx, pair.AccessToken)
	wantStatus(t, err, http.StatusInternalServerError)
}
