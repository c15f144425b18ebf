package bootstrap

import (
	"context"
	"time"

	"promptly-be/internal/config"
	"promptly-be/internal/controller"
	"promptly-be/internal/metrics"
	"promptly-be/internal/pkg/logger"
	"promptly-be/internal/pkg/mailer"
	"promptly-be/internal/repository/cache"
	"promptly-be/internal/repository/contract"
	"promptly-be/internal/repository/memory"
	"promptly-be/internal/repository/unitofwork"
	"promptly-be/internal/service"
	"promptly-be/pkg/events"
	"promptly-be/pkg/llm/factory"
	pktNats "promptly-be/pkg/nats"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	HealthController controller.IHealthController
	AuthController   controller.IAuthController
	OAuthController  controller.IOAuthController
	UserController   controller.IUserController
	PromptController controller.IPromptController

	// Background Services (Exposed for main.go to run)
	EventConsumer service.IEventConsumer

	Logger   logger.ILogger
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	c := &Container{
		Logger:   sysLogger,
		Metrics:  appMetrics,
		Registry: registry,
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
		sysLogger,
	)

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenAIBaseURL: cfg.Ai.OpenAIBaseURL,
		OpenAIKey:     cfg.Ai.OpenAIKey,
		Timeout:       cfg.Ai.Timeout,
	})
	if err != nil {
		return nil, err
	}
	sysLogger.Info("BOOT", "LLM provider ready", map[string]interface{}{"provider": llmProvider.Name(), "model": cfg.Ai.LLMModel})

	// 2. Infrastructure
	attempts := c.attemptStore(cfg.App.RedisURL)
	publisher := c.eventBus(cfg.App.NatsURL, uowFactory)

	// 3. Services
	authSettings := service.AuthSettings{
		JwtSecret:       []byte(cfg.Auth.JwtSecret),
		SessionTTL:      cfg.Auth.SessionTTL,
		AttemptTTL:      cfg.Auth.AttemptTTL,
		MaxCodeAttempts: cfg.Auth.MaxCodeAttempts,
	}

	userService := service.NewUserService(uowFactory, publisher, sysLogger)
	promptService := service.NewPromptService(uowFactory, publisher, sysLogger)
	aiService := service.NewAIService(llmProvider, appMetrics, sysLogger)
	authService := service.NewAuthService(uowFactory, attempts, emailService, publisher, authSettings, sysLogger)
	oauthService := service.NewOAuthService(uowFactory, attempts, publisher, service.GoogleSettings{
		ClientID:     cfg.Auth.GoogleClientID,
		ClientSecret: cfg.Auth.GoogleClientSecret,
		RedirectURL:  cfg.Auth.GoogleRedirectURL,
	}, authSettings, sysLogger)

	// 4. Controllers
	c.HealthController = controller.NewHealthController(cfg.App.Version)
	c.AuthController = controller.NewAuthController(authService)
	c.OAuthController = controller.NewOAuthController(oauthService)
	c.UserController = controller.NewUserController(userService, authSettings.JwtSecret)
	c.PromptController = controller.NewPromptController(promptService, aiService, authSettings.JwtSecret)

	return c, nil
}

// attemptStore prefers Redis so pending sign-ins survive restarts and are
// shared between instances.
func (c *Container) attemptStore(redisURL string) contract.AttemptStore {
	if redisURL == "" {
		c.Logger.Info("BOOT", "REDIS_URL not set, keeping auth attempts in memory", nil)
		return memory.NewAttemptStore()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		c.Logger.Warn("BOOT", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("BOOT", "Redis unreachable, keeping auth attempts in memory", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return memory.NewAttemptStore()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return cache.NewRedisAttemptStore(rdb)
}

// eventBus connects to NATS when configured. Without it events are dropped
// and the consumer is not started.
func (c *Container) eventBus(natsURL string, uowFactory unitofwork.RepositoryFactory) events.Publisher {
	if natsURL == "" {
		c.Logger.Info("BOOT", "NATS_URL not set, domain events disabled", nil)
		return nil
	}

	natsPub, err := pktNats.NewPublisher(natsURL)
	if err != nil {
		c.Logger.Warn("BOOT", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		return nil
	}
	c.closers = append(c.closers, natsPub.Close)

	natsSub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		c.Logger.Warn("BOOT", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
	} else {
		c.closers = append(c.closers, natsSub.Close)
		c.EventConsumer = service.NewEventConsumer(natsSub, uowFactory, c.Metrics, c.Logger)
	}

	return service.ObservedPublisher{Next: natsPub, Metrics: c.Metrics}
}

func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
