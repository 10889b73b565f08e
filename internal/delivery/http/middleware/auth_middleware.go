package middleware

import (
	"context"
	"net/http"
	"strings"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/pkg/jwt"
	"wmhn-clinic-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type claimsKey struct{}

const bearerPrefix = "Bearer "

// AuthMiddleware guards the admin routes with signed access tokens that have
// not been revoked by logout.
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	revocations service.TokenRevocationService
	log         *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, revocations service.TokenRevocationService, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		revocations: revocations,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || token == "" || strings.Contains(token, " ") {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(token)
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		revoked, err := m.revocations.IsRevoked(r.Context(), claims.TokenID)
		if err != nil {
			m.log.Warnf("Failed to check token revocation: %+v", err)
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// GetClaimsFromContext returns the claims Authenticate validated.
func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.Claims)
	return claims, ok && claims != nil
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.Role, true
}

// ActorFromContext identifies the authenticated admin for audit entries.
func ActorFromContext(ctx context.Context) entity.Actor {
	var actor entity.Actor
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return actor
	}
	if claims.UserID != uuid.Nil {
		id := claims.UserID
		actor.ID = &id
	}
	actor.Email = claims.Email
	return actor
}
