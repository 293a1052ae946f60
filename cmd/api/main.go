package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	badgeadp "visitor-admission/internal/adapter/badge"
	httpadp "visitor-admission/internal/adapter/http"
	"visitor-admission/internal/adapter/middleware"
	notifyadp "visitor-admission/internal/adapter/notify"
	repo "visitor-admission/internal/adapter/repository/mysql"
	"visitor-admission/internal/adapter/storage"
	"visitor-admission/internal/config"
	domainNotify "visitor-admission/internal/domain/notify"
	"visitor-admission/internal/infrastructure/cache"
	"visitor-admission/internal/infrastructure/db"
	"visitor-admission/internal/infrastructure/logger"
	"visitor-admission/internal/infrastructure/messaging"
	"visitor-admission/internal/infrastructure/token"
	"visitor-admission/internal/usecase/admission"
	ucApproval "visitor-admission/internal/usecase/approval"
	ucAuth "visitor-admission/internal/usecase/auth"
	ucGrant "visitor-admission/internal/usecase/grant"
	ucVisitor "visitor-admission/internal/usecase/visitor"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), log)
	if err != nil {
		log.Fatal("open mysql", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		log.Fatal("mysql pool", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		log.Fatal("open redis", zap.Error(err))
	}
	defer func() { _ = rdb.Close() }()

	uploader, err := storage.NewCloudinaryUploader(cfg.CloudinaryURL)
	if err != nil {
		log.Fatal("artifact hosting", zap.Error(err))
	}

	// host notifications go through kafka when brokers are configured
	var notifier domainNotify.Notifier = notifyadp.NewLogNotifier(log)
	if brokers := messaging.SplitBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		writer := messaging.NewWriter(brokers)
		defer func() { _ = writer.Close() }()
		notifier = notifyadp.NewKafkaNotifier(writer, cfg.KafkaNotifyTopic)
		log.Info("host notifications via kafka", zap.Strings("brokers", brokers), zap.String("topic", cfg.KafkaNotifyTopic))
	}

	visitors := repo.NewVisitorRepository(gdb)
	approvals := repo.NewApprovalRepository(gdb)
	grants := repo.NewGrantRepository(gdb)
	employees := repo.NewEmployeeRepository(gdb)
	tx := repo.NewGormUoW(gdb)

	signer := token.NewSigner(cfg.JWTSecret, cfg.JWTTTL)
	badges := admission.NewBadgeCoordinator(badgeadp.NewQRIssuer(uploader, cfg.BadgeFolder), signer)
	engine := admission.NewEngine(visitors, approvals, tx, badges, log, admission.WithTimeout(cfg.AdmissionTimeout))

	handlers := httpadp.Handlers{
		Health: httpadp.NewHandler(map[string]httpadp.HealthCheck{
			"mysql": sqlDB.PingContext,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Visitors: httpadp.NewVisitorHandler(
			ucVisitor.NewUsecase(visitors, employees, tx, storage.NewPhotoStore(uploader, cfg.PhotoFolder), notifier, log),
			engine,
		),
		Approvals: httpadp.NewApprovalHandler(ucApproval.NewUsecase(approvals, tx, badges, log)),
		Grants:    httpadp.NewGrantHandler(ucGrant.NewUsecase(grants, visitors, employees, log)),
		Auth:      httpadp.NewAuthHandler(ucAuth.NewUsecase(employees, signer)),
		Badges:    httpadp.NewBadgeHandler(signer, engine),
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.HTTPErrorHandler = httpadp.ErrorHandler
	e.Use(middleware.RequestID(), middleware.RequestLogger(log), echomw.Recover())

	httpadp.RegisterRoutes(e, handlers, httpadp.RouteMiddleware{
		RequireAuth: middleware.RequireAuth(signer),
		Idempotency: middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, log),
		StatusLimit: middleware.RateLimitByIP(rate.Limit(cfg.StatusRatePerSec), cfg.StatusRateBurst),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.AppPort
		log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
