package saasbase

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/appforge/saasbase/pkg/config"
	"github.com/appforge/saasbase/pkg/csrf"
	"github.com/appforge/saasbase/pkg/environment"
	"github.com/appforge/saasbase/pkg/feature"
	"github.com/appforge/saasbase/pkg/logger"
	"github.com/appforge/saasbase/pkg/ratelimit"
	"github.com/appforge/saasbase/pkg/redis"
	"github.com/appforge/saasbase/pkg/requestid"
	"github.com/appforge/saasbase/pkg/tenant"
)

// Config holds application-level settings.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"saasbase"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
}

// Stack bundles the request-processing components the boilerplate wires
// into a router. Limiter and Flags are optional; everything else is
// required.
type Stack struct {
	Env      environment.Environment
	Log      *slog.Logger
	Resolver *tenant.Resolver
	CSRF     *csrf.Engine
	Limiter  ratelimit.Limiter
	Flags    feature.Provider
}

// New builds a Stack from environment-derived configuration. Each config
// struct is loaded once and injected; components never read the
// environment themselves. In production the CSRF cookies are forced
// Secure regardless of the CSRF_SECURE_COOKIES setting.
func New() (*Stack, error) {
	var appCfg Config
	if err := config.Load(&appCfg); err != nil {
		return nil, err
	}
	env := environment.Parse(appCfg.AppEnv)

	var tenantCfg tenant.Config
	if err := config.Load(&tenantCfg); err != nil {
		return nil, err
	}

	var csrfCfg csrf.Config
	if err := config.Load(&csrfCfg); err != nil {
		return nil, err
	}
	if env.IsProduction() {
		csrfCfg.SecureCookies = true
	}

	log := logger.New(
		logger.WithEnvironment(env, appCfg.AppName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)

	return &Stack{
		Env:      env,
		Log:      log,
		Resolver: tenant.NewResolver(tenantCfg),
		CSRF:     csrf.NewEngine(csrfCfg),
	}, nil
}

// NewRedisLimiter connects to Redis using environment-derived
// configuration and returns a distributed fixed-window limiter for the
// Stack. Single-instance deployments can use ratelimit.NewMemoryLimiter
// instead.
func NewRedisLimiter(ctx context.Context) (ratelimit.Limiter, error) {
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}

	var limitCfg ratelimit.Config
	if err := config.Load(&limitCfg); err != nil {
		return nil, err
	}

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, err
	}

	return ratelimit.NewRedisLimiter(client, limitCfg), nil
}

// Router assembles the middleware chain in the order the protocols
// require: request id tagging, environment tagging, rate limiting, tenant
// resolution, then CSRF enforcement. The CSRF issuance endpoint is mounted
// at the engine's configured path; all business routes are the consumer's
// to add.
func Router(s *Stack) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(s.Env))
	if s.Limiter != nil {
		r.Use(ratelimit.Middleware(s.Limiter, ratelimit.KeyByIP))
	}
	r.Use(tenant.Middleware(s.Resolver, tenant.WithLogger(s.Log)))
	r.Use(csrf.Middleware(s.CSRF))

	r.Get(s.CSRF.Config().IssuancePath, csrf.TokenHandler(s.CSRF))

	return r
}
