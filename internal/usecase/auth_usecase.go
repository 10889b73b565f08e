package usecase

import (
	"context"
	"errors"
	"time"

	"wmhn-clinic-api/internal/domain/entity"
	"wmhn-clinic-api/internal/service"
	"wmhn-clinic-api/pkg/jwt"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
)

// AuthUsecase covers the admin session operations this service owns. Tokens
// are issued elsewhere; logging out revokes the presented token.
type AuthUsecase interface {
	Logout(ctx context.Context, actor entity.Actor, claims *jwt.Claims) error
}

type authUsecase struct {
	log          *logrus.Logger
	revocations  service.TokenRevocationService
	auditService service.AuditService
	now          func() time.Time
}

func NewAuthUsecase(
	log *logrus.Logger,
	revocations service.TokenRevocationService,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		revocations:  revocations,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *authUsecase) Logout(ctx context.Context, actor entity.Actor, claims *jwt.Claims) error {
	if claims == nil || claims.TokenID == "" {
		return ErrInvalidToken
	}

	ttl := claims.RemainingLifetime(u.now())
	if err := u.revocations.Revoke(ctx, claims.TokenID, ttl); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	_ = u.auditService.LogCreate(ctx, actor, entity.AuditActionAdminLogout, "session", claims.TokenID, nil)

	return nil
}
