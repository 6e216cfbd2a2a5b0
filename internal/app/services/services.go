// Package services holds the business rules: forum engagement, the
// notification feed, the result gate, applications and admin login.
package services

import (
	"time"

	"github.com/csecl/interviewhub/internal/app/repositories"
	"github.com/csecl/interviewhub/internal/config"
	"github.com/csecl/interviewhub/internal/pkg/auth"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/csecl/interviewhub/internal/pkg/resultgate"
	"github.com/rs/zerolog"
)

// Services holds all the service instances
type Services struct {
	Engagement    *EngagementService
	Notifications *NotificationService
	Results       *ResultService
	Applications  *ApplicationService
	AdminAuth     *AdminAuthService
}

// NewServices wires every service on top of repos. publisher may be nil.
func NewServices(cfg *config.Config, repos *repositories.Repositories, gate resultgate.Gate, publisher Publisher, logger zerolog.Logger) (*Services, error) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	adminAuth, err := NewAdminAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.Admin.Password,
		jwtService, logger.With().Str("service", "admin_auth").Logger())
	if err != nil {
		return nil, err
	}

	notifications := NewNotificationService(repos.Notifications, publisher,
		logger.With().Str("service", "notifications").Logger())

	return &Services{
		Engagement: NewEngagementService(repos, notifications,
			logger.With().Str("service", "engagement").Logger()),
		Notifications: notifications,
		Results: NewResultService(repos.Applications, gate, cfg.Results.PassThreshold,
			logger.With().Str("service", "results").Logger()),
		Applications: NewApplicationService(repos.Applications, cfg.Results.MaxScore,
			logger.With().Str("service", "applications").Logger()),
		AdminAuth: adminAuth,
	}, nil
}
