package app

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Shaxzodbek16/clot/domain"
	"github.com/Shaxzodbek16/clot/internal/config"
	"github.com/Shaxzodbek16/clot/internal/infrastructure/auth"
	"github.com/Shaxzodbek16/clot/internal/infrastructure/database"
	"github.com/Shaxzodbek16/clot/internal/infrastructure/notifications"
	"github.com/Shaxzodbek16/clot/internal/infrastructure/repositories"
	"github.com/Shaxzodbek16/clot/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client

	UserRepo   domain.UserRepository
	OTPRepo    domain.OTPRepository
	TokenStore domain.TokenStore

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OTPService
	AuthSvc         domain.AuthService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	c.DB = db

	c.RedisClient = database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client

	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

// initServices wires repositories and services onto the open connections.
// Split out so tests can reuse it against their own DB and Redis handles.
func (c *Container) initServices() error {
	cfg := c.Config

	c.UserRepo = repositories.NewUserRepository(c.DB, cfg.PhoneRegexp)
	c.OTPRepo = repositories.NewOTPRepository(c.DB)
	c.TokenStore = repositories.NewTokenStore(c.RedisClient)

	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	c.NotificationSvc = notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	c.OTPSvc = services.NewOTPService(c.OTPRepo, c.NotificationSvc, cfg.OTP_TTL)

	authSvc, err := services.NewAuthService(
		c.UserRepo,
		c.OTPSvc,
		c.PasswordSvc,
		c.TokenSvc,
		c.TokenStore,
		cfg.PhoneRegexp,
		cfg.PasswordMinLength,
	)
	if err != nil {
		return err
	}
	c.AuthSvc = authSvc
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
