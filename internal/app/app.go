package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shaxzodbek16/clot/internal/config"
	httpx "github.com/Shaxzodbek16/clot/internal/http"
	"github.com/Shaxzodbek16/clot/internal/http/handlers"
	"github.com/Shaxzodbek16/clot/internal/http/middleware"
	"github.com/Shaxzodbek16/clot/internal/infrastructure/auth"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.TokenSvc)
	userH := handlers.NewUserHandlers(c.AuthSvc, c.UserRepo)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(cas.E)

	r := httpx.BuildRouter(authH, userH, jwtMW, casbinMW)

	policies, _ := cas.E.GetPolicy()
	if len(policies) == 0 {
		cas.E.AddPolicy("role_staff", "/users", "GET")
		cas.E.AddPolicy("role_staff", "/users/*", "(GET|PUT|PATCH|DELETE)")
		cas.E.AddPolicy("role_user", "/users/me", "(GET|PUT|PATCH|DELETE)")
		_ = cas.E.SavePolicy()
		log.Println("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
