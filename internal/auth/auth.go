package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"MixLab/internal/handlers"
	"MixLab/internal/observability"
	repo "MixLab/internal/repo"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userLoginKey contextKey = "userLogin"

	CookieName = "session_token"
	TokenTTL   = 30 * 24 * time.Hour

	// LimiterIdleTTL is how long an address may stay quiet before its
	// limiter is dropped.
	LimiterIdleTTL = 10 * time.Minute
)

type Authenv struct {
	JWTkey []byte
	Repo   repo.Repository
	Now    func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type IPRateLimiter struct {
	ips       map[string]*visitor
	mu        sync.Mutex
	r         rate.Limit
	b         int
	now       func() time.Time
	lastSweep time.Time
}

type Loginrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type Registerrequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*visitor),
		r:   r,
		b:   b,
		now: time.Now,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	now := i.now()
	if now.Sub(i.lastSweep) >= LimiterIdleTTL {
		i.evictIdle(now)
		i.lastSweep = now
	}

	v, exists := i.ips[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.ips[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

// evictIdle drops limiters not used within LimiterIdleTTL. Caller holds mu.
func (i *IPRateLimiter) evictIdle(now time.Time) {
	for ip, v := range i.ips {
		if now.Sub(v.lastSeen) >= LimiterIdleTTL {
			delete(i.ips, ip)
		}
	}
}

// LimitMiddleware rejects requests beyond the per-IP budget with 429.
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !i.getLimiter(ip).Allow() {
			handlers.WriteError(w, http.StatusTooManyRequests, "Too Many Requests. Try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Authenv) now() time.Time {
	if env.Now != nil {
		return env.Now()
	}
	return time.Now()
}

// IssueToken signs an HS256 session token for the user.
func (env *Authenv) IssueToken(userID int, login string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     env.now().Add(TokenTTL).Unix(),
	})
	return token.SignedString(env.JWTkey)
}

// ParseToken validates the signature and expiry and returns the user id and login.
func (env *Authenv) ParseToken(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTkey, nil
	}, jwt.WithTimeFunc(env.now))
	if err != nil {
		return 0, "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, "", errors.New("invalid token")
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok || idFloat <= 0 {
		return 0, "", errors.New("token has no user_id")
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return 0, "", errors.New("token has no login")
	}
	return int(idFloat), login, nil
}

func (env *Authenv) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		id, login, err := env.ParseToken(cookie.Value)
		if err != nil {
			observability.LoggerFromContext(r.Context()).Debug("rejected session token", zap.Error(err))
			handlers.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, id)
		ctx = context.WithValue(ctx, userLoginKey, login)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

func (env *Authenv) addCookie(w http.ResponseWriter, userID int, login string) error {
	tokenString, err := env.IssueToken(userID, login)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  env.now().Add(TokenTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Authenv) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())
	var req Registerrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Login, email and password required")
		return
	}
	if len(req.Password) < 6 {
		handlers.WriteError(w, http.StatusBadRequest, "Password too short")
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if errors.Is(err, repo.ErrUserExists) {
		handlers.WriteError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		log.Error("create user", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}

	if err := env.addCookie(w, id, req.Login); err != nil {
		log.Error("session cookie", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "Session error")
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, map[string]any{"id": id, "login": req.Login})
}

func (env *Authenv) AuthHandler(w http.ResponseWriter, r *http.Request) {
	log := observability.LoggerFromContext(r.Context())
	var req Loginrequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		handlers.WriteError(w, http.StatusBadRequest, "Login and password required")
		return
	}

	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if err != nil {
		log.Error("get user", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "DB error")
		return
	}
	if id == 0 || bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)) != nil {
		handlers.WriteError(w, http.StatusUnauthorized, "Invalid login or password")
		return
	}
	if err := env.addCookie(w, id, req.Login); err != nil {
		log.Error("session cookie", zap.Error(err))
		handlers.WriteError(w, http.StatusInternalServerError, "Session error")
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "login": req.Login})
}

func UserLoginFromContext(ctx context.Context) string {
	login, _ := ctx.Value(userLoginKey).(string)
	return login
}
