package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/navneetha-rajan/mindmate/internal/data/repos"
	types "github.com/navneetha-rajan/mindmate/internal/domain"
	"github.com/navneetha-rajan/mindmate/internal/pkg/ctxutil"
	"github.com/navneetha-rajan/mindmate/internal/pkg/dbctx"
	apperrors "github.com/navneetha-rajan/mindmate/internal/pkg/errors"
	"github.com/navneetha-rajan/mindmate/internal/pkg/logger"
	"github.com/navneetha-rajan/mindmate/internal/platform/apierr"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 8
)

var errInvalidCredentials = errors.New("invalid username or password")

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, login, password string) (TokenPair, error)
	RefreshUser(ctx context.Context) (TokenPair, error)
	LogoutUser(ctx context.Context) error
	CurrentUser(ctx context.Context) (*types.User, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	bcryptCost    int
	now           Clock
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		bcryptCost:    bcrypt.DefaultCost,
		now:           systemClock,
	}
}

func validateRegistration(in RegisterInput) (RegisterInput, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if n := utf8.RuneCountInString(in.Username); n < minUsernameLen || n > maxUsernameLen {
		return in, apierr.BadRequest("invalid_username", "username must be %d-%d characters", minUsernameLen, maxUsernameLen)
	}
	if strings.ContainsAny(in.Username, " @") {
		return in, apierr.BadRequest("invalid_username", "username must not contain spaces or @")
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return in, apierr.BadRequest("invalid_email", "email address is not valid")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLen {
		return in, apierr.BadRequest("invalid_password", "password must be at least %d characters", minPasswordLen)
	}
	return in, nil
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	in, err := validateRegistration(in)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), as.bcryptCost)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: in.Username,
		Email:    in.Email,
		Password: string(hash),
		FullName: in.FullName,
		IsActive: true,
	}
	err = as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		exists, err := as.userRepo.Exists(dbc, user.Username, user.Email)
		if err != nil {
			return fmt.Errorf("check existing user: %w", err)
		}
		if exists {
			return apperrors.ErrConflict
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apierr.Conflict("username or email already registered")
		}
		as.log.Error("Register user failed", "error", err)
		return nil, apierr.Internal(err)
	}
	as.log.Info("User registered", "user_id", user.ID)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, login, password string) (TokenPair, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" {
		return TokenPair{}, apierr.BadRequest("invalid_request", "username and password are required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	user, err := as.userRepo.GetByLogin(dbc, login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return TokenPair{}, apierr.Unauthorized(errInvalidCredentials)
		}
		return TokenPair{}, apierr.Internal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return TokenPair{}, apierr.Unauthorized(errInvalidCredentials)
	}
	if !user.IsActive {
		return TokenPair{}, apierr.Unauthorized(errors.New("account is inactive"))
	}

	if n, err := as.userTokenRepo.FullDeleteExpired(dbc, as.now()); err != nil {
		as.log.Warn("Prune expired tokens failed", "error", err)
	} else if n > 0 {
		as.log.Debug("Pruned expired tokens", "count", n)
	}

	pair, err := as.issueTokens(dbc, user.ID)
	if err != nil {
		as.log.Error("Issue tokens failed", "error", err, "user_id", user.ID)
		return TokenPair{}, apierr.Internal(err)
	}
	return pair, nil
}

func (as *authService) RefreshUser(ctx context.Context) (TokenPair, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		as.log.Warn("Refresh token not found in request data")
		return TokenPair{}, apierr.Unauthorized(errors.New("refresh token not found"))
	}

	var pair TokenPair
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{rd.RefreshToken})
		if err != nil {
			return fmt.Errorf("lookup refresh token: %w", err)
		}
		if len(found) == 0 {
			return apierr.Unauthorized(errors.New("refresh token not recognised"))
		}
		existing := found[0]
		if existing.ExpiresAt.Before(as.now()) {
			if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return apierr.Unauthorized(errors.New("refresh token expired"))
		}
		pair, err = as.issueTokens(dbc, existing.UserID)
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			return fmt.Errorf("remove old token: %w", err)
		}
		return nil
	})
	if err != nil {
		if _, ok := apierr.As(err); ok {
			return TokenPair{}, err
		}
		as.log.Error("Refresh failed", "error", err)
		return TokenPair{}, apierr.Internal(err)
	}
	return pair, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return apierr.Unauthorized(errNoUser)
	}
	if err := as.userTokenRepo.FullDeleteByAccessTokens(dbctx.Context{Ctx: ctx}, []string{rd.TokenString}); err != nil {
		as.log.Error("Logout failed", "error", err, "user_id", rd.UserID)
		return apierr.Internal(err)
	}
	return nil
}

func (as *authService) CurrentUser(ctx context.Context) (*types.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	users, err := as.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user")
	}
	return users[0], nil
}

// issueTokens signs an access token and stores it with a fresh refresh token.
func (as *authService) issueTokens(dbc dbctx.Context, userID uuid.UUID) (TokenPair, error) {
	access, err := as.generateAccessToken(userID)
	if err != nil {
		return TokenPair{}, fmt.Errorf("generate access token: %w", err)
	}
	token := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  access,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    as.now().Add(as.refreshTTL),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{token}); err != nil {
		return TokenPair{}, fmt.Errorf("create user token: %w", err)
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: token.RefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}

func (as *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := as.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, apierr.Unauthorized(errors.New("missing token"))
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid or expired token: %w", err))
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, apierr.Unauthorized(fmt.Errorf("invalid user id in token: %w", err))
	}

	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		as.log.Warn("Lookup user token failed", "error", err)
		return ctx, apierr.Internal(err)
	}
	if len(found) == 0 || found[0].UserID != userID {
		return ctx, apierr.Unauthorized(errors.New("token has been revoked"))
	}
	users, err := as.userRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{userID})
	if err != nil {
		as.log.Warn("Lookup token user failed", "error", err, "user_id", userID)
		return ctx, apierr.Internal(err)
	}
	if len(users) == 0 || !users[0].IsActive {
		return ctx, apierr.Unauthorized(errors.New("account is inactive"))
	}

	rd := &ctxutil.RequestData{
		UserID:       userID,
		Username:     users[0].Username,
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
