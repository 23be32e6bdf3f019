package httpserver

import (
	"log/slog"
	"net/http"
	"strings"

	"stockyard/internal/shared/tenancy"

	"github.com/golang-jwt/jwt/v5"
)

// Authenticator turns bearer tokens into tenancy identities. Tokens are HMAC
// signed; a missing or invalid token yields an unauthenticated identity, and
// the guards downstream decide what that actor may do.
type Authenticator struct {
	secret []byte
	logger *slog.Logger
}

func NewAuthenticator(secret string, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{secret: []byte(secret), logger: logger}
}

type accessClaims struct {
	TenantID      string   `json:"tenant_id"`
	Roles         []string `json:"roles"`
	PlatformAdmin bool     `json:"platform_admin"`
	jwt.RegisteredClaims
}

// Identify parses the Authorization header. It never fails the request
// itself: authorization decisions belong to the use-case guards.
func (a *Authenticator) Identify(r *http.Request) tenancy.Identity {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return tenancy.Identity{}
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return tenancy.Identity{}
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !token.Valid {
		a.logger.Debug("token rejected",
			"event", "auth_token_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
		)
		return tenancy.Identity{}
	}

	roles := make([]string, 0, len(claims.Roles))
	for _, role := range claims.Roles {
		if tenancy.IsKnownRole(role) {
			roles = append(roles, role)
		}
	}

	return tenancy.Identity{
		Authenticated: true,
		ActorID:       claims.Subject,
		TenantID:      claims.TenantID,
		PlatformAdmin: claims.PlatformAdmin,
		Roles:         roles,
	}
}
