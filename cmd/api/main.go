package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	"storefront/internal/infra/notify"
	"storefront/internal/infra/password"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/storage"
	"storefront/internal/infra/token"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/server"
	"storefront/internal/session"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

const (
	sessionSweepInterval = time.Minute
	// 確認メールのタイムアウトより少し長く
	notifyDrainTimeout = 15 * time.Second
)

func main() {
	cfg, err := config.LoadDotenv()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("db migrate failed", zap.Error(err))
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := password.NewBcryptHasher(12)
	verifier := password.NewBcryptVerifier()

	//JWTの期限はセッションと同じ
	jwt := token.NewJWT(cfg.JWTSecret, cfg.SessionTTL)

	sessions := session.NewManager(cfg.SessionTTL)
	go sessions.Run(ctx, sessionSweepInterval)

	//注文確認メール（未設定なら送らない）
	var notifier usecase.OrderNotifier
	if cfg.EmailJSEnabled() {
		notifier = notify.NewEmailJS(notify.EmailJSConfig{
			Endpoint:   cfg.EmailJSEndpoint,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
		})
	} else {
		log.Warn("emailjs is not configured; order confirmations are disabled")
	}

	//商品画像（バケット未設定ならアップロード不可）
	var images usecase.ImageStore
	if cfg.S3Bucket != "" {
		s3Store, err := storage.NewS3ImageStore(ctx, cfg.AWSRegion, cfg.S3Bucket)
		if err != nil {
			log.Fatal("s3 init failed", zap.Error(err))
		}
		images = s3Store
	}

	//Usecase生成
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, hasher, verifier, jwt, sessions, idGen, clock)
	profileUC := usecase.NewProfileUsecase(userRepo, authValidator, clock)
	productUC := usecase.NewProductUsecase(productRepo, txManager, images, idGen, clock)
	cartUC := usecase.NewCartUsecase(productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(userRepo, productRepo, orderRepo, notifier, idGen, clock, log)
	orderUC := usecase.NewOrderUsecase(orderRepo, txManager, clock, cfg.OrderStatusStrict)
	activityUC := usecase.NewActivityUsecase(auditRepo)

	//Handler生成
	guards := handler.Guards{
		Auth:         []echo.MiddlewareFunc{middleware.AuthJWT(jwt), middleware.SessionGuard(sessions)},
		OptionalAuth: []echo.MiddlewareFunc{middleware.OptionalAuthJWT(jwt), middleware.OptionalSessionGuard(sessions)},
	}
	e := server.New(cfg, log, guards, server.Handlers{
		Auth:          handler.NewAuthHandler(authUC),
		Profile:       handler.NewProfileHandler(profileUC),
		Navigation:    handler.NewNavigationHandler(),
		Product:       handler.NewProductHandler(productUC),
		SellerProduct: handler.NewSellerProductHandler(productUC),
		Cart:          handler.NewCartHandler(cartUC),
		Checkout:      handler.NewCheckoutHandler(checkoutUC),
		Order:         handler.NewOrderHandler(orderUC),
		SellerOrder:   handler.NewSellerOrderHandler(orderUC),
		Activity:      handler.NewSellerActivityHandler(activityUC),
	})

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr(), log); err != nil {
		log.Error("server error", zap.Error(err))
	}

	//送信中の確認メールを待ってから終了
	drainCtx, cancel := context.WithTimeout(context.Background(), notifyDrainTimeout)
	defer cancel()
	if err := checkoutUC.Drain(drainCtx); err != nil {
		log.Warn("order confirmations still in flight at exit", zap.Error(err))
	}
}
