package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cliniq/cliniq/internal/platform/apperr"
	"github.com/cliniq/cliniq/pkg/respond"
)

// TokenTTL is how long issued tokens remain valid.
const TokenTTL = 12 * time.Hour

// Claims carries the identity embedded in an issued token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service issues and verifies signed tokens. This is a placeholder login
// flow: any username with a password of at least 3 characters is accepted.
// There is no user store.
type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(secret string) *Service {
	return &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// IssueToken creates a signed HS256 token for the given username.
func (s *Service) IssueToken(username string) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(TokenTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken parses and validates a signed token and returns its claims.
func (s *Service) VerifyToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Handler exposes the login endpoint.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
}

// Login accepts any username with a password of at least 3 characters and
// returns a signed token.
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	verr := &apperr.ValidationError{}
	if strings.TrimSpace(req.Username) == "" {
		verr.Add("username", "Username is required")
	}
	if len(req.Password) < 3 {
		verr.Add("password", "Password must be at least 3 characters")
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	token, expiresAt, err := h.svc.IssueToken(strings.TrimSpace(req.Username))
	if err != nil {
		return err
	}

	return respond.OKMessage(c, loginResponse{
		Token:     token,
		Username:  strings.TrimSpace(req.Username),
		ExpiresAt: expiresAt,
	}, "Login successful")
}

// RequireAuth returns middleware that rejects requests without a valid
// Bearer token.
func RequireAuth(svc *Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := svc.VerifyToken(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("username", claims.Username)
			return next(c)
		}
	}
}
