package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/gaspay-backend/api/routes"
	"github.com/ArowuTest/gaspay-backend/internal/config"
	"github.com/ArowuTest/gaspay-backend/internal/handlers"
	"github.com/ArowuTest/gaspay-backend/internal/logging"
	"github.com/ArowuTest/gaspay-backend/internal/notify"
	"github.com/ArowuTest/gaspay-backend/internal/repositories"
	"github.com/ArowuTest/gaspay-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/gaspay-backend/internal/repositories/mongodb"
	redisrepo "github.com/ArowuTest/gaspay-backend/internal/repositories/redis"
	"github.com/ArowuTest/gaspay-backend/internal/services"
	"github.com/ArowuTest/gaspay-backend/internal/session"
	"github.com/ArowuTest/gaspay-backend/pkg/advisor"
	"github.com/ArowuTest/gaspay-backend/pkg/jwt"
	"github.com/ArowuTest/gaspay-backend/pkg/mongodb"
	redisclient "github.com/ArowuTest/gaspay-backend/pkg/redis"
	"github.com/ArowuTest/gaspay-backend/pkg/smsgateway"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logCloser, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logCloser.Close()

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", cfg.Storage.Driver, err)
	}
	defer closeStore()

	loginVerifier, err := services.NewOTPVerifier(cfg.Auth.OTPCode, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to prepare login code: %v", err)
	}
	actionVerifier, err := services.NewOTPVerifier(cfg.Auth.ActionOTPCode, bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to prepare action code: %v", err)
	}

	tokens := jwt.NewTokenService(cfg.JWT.Secret, cfg.TokenTTL())
	sms := smsgateway.NewMTNGateway(cfg.SMS.MTNGateway.BaseURL, cfg.SMS.MTNGateway.APIKey, cfg.SMS.MTNGateway.APISecret, cfg.SMS.MockSMSGateway)
	adv := advisor.NewClient(cfg.Advisor.BaseURL, cfg.Advisor.APIKey, cfg.Advisor.Model, cfg.Advisor.MockAPI, cfg.Advisor.Timeout)

	sessionCfg := session.Config{
		ScanDelay:               cfg.Timers.ScanDelay,
		ScanFeedbackDelay:       cfg.Timers.ScanFeedbackDelay,
		BiometricDelay:          cfg.Timers.BiometricDelay,
		PaymentSuccessAutoClose: cfg.Timers.PaymentSuccessAutoClose,
	}
	sessions := services.NewSessionManager(sessionCfg, loginVerifier,
		session.WithScanner(session.RandomScanner(advisor.StationNames())))
	go sessions.RunJanitor(ctx, 10*time.Minute, services.DefaultIdleTimeout)

	accounts := services.NewAccounts(repositories.NewAccountRepository(store), notify.NewSink())

	authService := services.NewAuthService(sessions, accounts, tokens, sms, actionVerifier, cfg.Auth.OTPCode)
	walletService := services.NewWalletService(sessions, accounts)
	notificationService := services.NewNotificationService(accounts)
	paymentMethodService := services.NewPaymentMethodService(accounts)
	advisoryService := services.NewAdvisoryService(adv, accounts)

	router := routes.SetupRouter(cfg, routes.HandlerDependencies{
		AuthHandler:          handlers.NewAuthHandler(authService),
		WalletHandler:        handlers.NewWalletHandler(walletService),
		NotificationHandler:  handlers.NewNotificationHandler(notificationService),
		PaymentMethodHandler: handlers.NewPaymentMethodHandler(paymentMethodService),
		AdvisoryHandler:      handlers.NewAdvisoryHandler(advisoryService),
		Tokens:               tokens,
		Store:                store,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	log.WithFields(log.Fields{"port": cfg.Server.Port, "storage": cfg.Storage.Driver}).Info("Server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	sessions.Sweep(time.Now(), -1)

	log.Info("Server exiting")
}

// openStore connects the configured persistence driver
func openStore(ctx context.Context, cfg *config.Config) (repositories.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageMongoDB:
		client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
		if err != nil {
			return nil, nil, err
		}
		store := mongorepo.NewKVStore(client.Database(cfg.MongoDB.Database))
		if err := store.EnsureIndexes(ctx); err != nil {
			log.WithError(err).Warn("failed to create account_state indexes")
		}
		return store, func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Errorf("Error disconnecting from MongoDB: %v", err)
			}
		}, nil
	case config.StorageRedis:
		client, err := redisclient.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return redisrepo.NewKVStore(client), func() {
			if err := client.Close(); err != nil {
				log.Errorf("Error closing Redis client: %v", err)
			}
		}, nil
	default:
		log.Warn("using in-memory storage; data is lost on restart")
		return memory.NewKVStore(), func() {}, nil
	}
}
