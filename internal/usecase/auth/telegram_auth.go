package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lumatch/lumatch-backend/internal/domain"
	"github.com/lumatch/lumatch-backend/internal/repository"
)

var (
	ErrInvalidSignature = errors.New("invalid telegram signature")
	ErrPayloadExpired   = errors.New("auth payload expired")
	ErrInvalidToken     = errors.New("invalid token")
)

// maxAuthAge bounds how old a Telegram login payload may be.
const maxAuthAge = 24 * time.Hour

type TelegramAuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	botToken    string
	jwtSecret   string
	tokenTTL    time.Duration
	adminIDs    map[int64]struct{}
}

func NewTelegramAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	botToken string,
	jwtSecret string,
	tokenTTL time.Duration,
	adminIDs []int64,
) *TelegramAuthUseCase {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &TelegramAuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		botToken:    botToken,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		adminIDs:    admins,
	}
}

// AuthResponse carries the signed token the client presents on every call.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Authenticate verifies a Telegram login-widget payload, upserts the user and
// opens a server session referenced by the issued JWT.
func (uc *TelegramAuthUseCase) Authenticate(ctx context.Context, payload map[string]string) (*AuthResponse, error) {
	if err := uc.verifySignature(payload); err != nil {
		return nil, err
	}

	authDate, err := strconv.ParseInt(payload["auth_date"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad auth_date", domain.ErrInvalidInput)
	}
	if time.Since(time.Unix(authDate, 0)) > maxAuthAge {
		return nil, ErrPayloadExpired
	}

	userID, err := strconv.ParseInt(payload["id"], 10, 64)
	if err != nil || userID == 0 {
		return nil, fmt.Errorf("%w: bad user id", domain.ErrInvalidInput)
	}

	user := &domain.User{ID: userID}
	if v, ok := payload["username"]; ok && v != "" {
		user.Username = &v
	}
	if v, ok := payload["first_name"]; ok && v != "" {
		user.FirstName = &v
	}
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	expiresAt := time.Now().Add(uc.tokenTTL)
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	token, err := uc.signToken(userID, session.ID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// verifySignature checks the payload hash as Telegram specifies: HMAC-SHA256
// over the sorted key=value lines, keyed with SHA256 of the bot token.
func (uc *TelegramAuthUseCase) verifySignature(payload map[string]string) error {
	gotHash, ok := payload["hash"]
	if !ok || gotHash == "" {
		return ErrInvalidSignature
	}

	lines := make([]string, 0, len(payload))
	for k, v := range payload {
		if k == "hash" {
			continue
		}
		lines = append(lines, k+"="+v)
	}
	sort.Strings(lines)

	secret := sha256.Sum256([]byte(uc.botToken))
	mac := hmac.New(sha256.New, secret[:])
	mac.Write([]byte(strings.Join(lines, "\n")))
	want := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(want), []byte(gotHash)) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func (uc *TelegramAuthUseCase) signToken(userID int64, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"sid": sessionID,
		"exp": expiresAt.Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(uc.jwtSecret))
}

// ValidateToken parses the JWT, checks the backing session and returns the
// authenticated user id.
func (uc *TelegramAuthUseCase) ValidateToken(ctx context.Context, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	sid, _ := claims["sid"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || sid == "" {
		return 0, ErrInvalidToken
	}

	session, err := uc.sessionRepo.GetByID(ctx, sid)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if session.UserID != userID || session.Expired(time.Now()) {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Logout tears down the session behind the presented token.
func (uc *TelegramAuthUseCase) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ErrInvalidToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return ErrInvalidToken
	}
	return uc.sessionRepo.Delete(ctx, sid)
}

func (uc *TelegramAuthUseCase) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// IsAdmin reports whether the user id is in the configured admin allowlist.
func (uc *TelegramAuthUseCase) IsAdmin(userID int64) bool {
	_, ok := uc.adminIDs[userID]
	return ok
}
