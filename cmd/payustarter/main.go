package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/controllers"
	"github.com/ManuelReschke/payu-starter/app/repository"
	"github.com/ManuelReschke/payu-starter/internal/pkg/cache"
	"github.com/ManuelReschke/payu-starter/internal/pkg/database"
	"github.com/ManuelReschke/payu-starter/internal/pkg/env"
	"github.com/ManuelReschke/payu-starter/internal/pkg/metrics"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payment"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
	"github.com/ManuelReschke/payu-starter/internal/pkg/router"
	"github.com/ManuelReschke/payu-starter/internal/pkg/s3backup"
	"github.com/ManuelReschke/payu-starter/views"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "8000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	setupLogging()
	database.SetupDatabase()
	if cache.Enabled() {
		cache.SetupCache()
	}

	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()

	provider := payment.NewClientProvider(repos.Setting, payu.EndpointsFromEnv())
	if err := provider.Reload(); err != nil {
		log.WithError(err).Error("failed to load payu settings, starting unconfigured")
	}

	controllers.Initialize(controllers.Dependencies{
		Repos:         repos,
		Provider:      provider,
		Workflow:      payment.NewWorkflow(provider, repos.Transaction),
		Notifications: payment.NewNotifications(repos.Notification, provider),
		Archiver:      setupArchiver(repos.Transaction),
		HealthChecks: map[string]controllers.HealthCheck{
			"database": func() error { return database.Ping(2 * time.Second) },
			"cache":    func() error { return cache.Ping(2 * time.Second) },
		},
		Secret: appSecret(),
	})

	// init fiber app
	trustedProxies := env.GetEnvList("TRUSTED_PROXIES")
	app := fiber.New(fiber.Config{
		Views:     views.NewEngine(),
		BodyLimit: 1 * 1024 * 1024,
		// forwarding headers are ignored unless the peer is listed here
		EnableTrustedProxyCheck: len(trustedProxies) > 0,
		TrustedProxies:          trustedProxies,
	})

	// recovery, logging and request metrics
	app.Use(recover.New(), logger.New(), metrics.PrometheusMiddleware())

	// prometheus + fiber monitor, only with credentials configured
	if pass := env.GetEnv("METRICS_PASSWORD", ""); pass != "" {
		metricsAuth := basicauth.New(basicauth.Config{
			Users: map[string]string{
				env.GetEnv("METRICS_USER", "admin"): pass,
			},
		})
		app.Get("/metrics", metricsAuth, adaptor.HTTPHandler(promhttp.Handler()))
		app.Get("/monitor", metricsAuth, monitor.New())
	} else {
		log.Warn("METRICS_PASSWORD not set, /metrics and /monitor are disabled")
	}

	// SWAGGER / OPENAPI
	if docPath := findOpenAPIDoc(); docPath != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/docs/api/",
			FilePath: docPath,
			Path:     "v1",
		}))
	} else {
		log.Warn("openapi.yml not found, API docs are disabled")
	}

	// ROUTER
	router.InstallRouter(app)

	return app
}

func setupLogging() {
	if env.IsDev() {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&log.JSONFormatter{})
	}
	level, err := log.ParseLevel(env.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
}

// appSecret signs the order cookie. Without APP_SECRET a random secret is
// used, so cookies do not survive a restart.
func appSecret() string {
	if secret := env.GetEnv("APP_SECRET", ""); secret != "" {
		return secret
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.WithError(err).Fatal("failed to generate app secret")
	}
	log.Warn("APP_SECRET not set, using a random secret for this process")
	return hex.EncodeToString(b)
}

func setupArchiver(ledger s3backup.LedgerSource) *s3backup.Archiver {
	cfg, err := s3backup.LoadConfig()
	if err != nil {
		log.WithError(err).Error("invalid S3 archive configuration, archive disabled")
		return nil
	}
	if !cfg.IsEnabled() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	client, err := s3backup.NewClient(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("failed to initialize S3 archive client, archive disabled")
		return nil
	}
	return s3backup.NewArchiver(client, ledger, cfg)
}

func findOpenAPIDoc() string {
	basePaths := []string{
		"./",        // Current directory
		"../../",    // From cmd/payustarter to project root
		"../../../", // Fallback
	}
	for _, path := range basePaths {
		candidate := path + "public/docs/v1/openapi.yml"
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
