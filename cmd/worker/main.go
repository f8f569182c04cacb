package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"eops/ratesync/internal/business"
	"eops/ratesync/internal/engine/aggregate"
	"eops/ratesync/internal/engine/pricing"
	"eops/ratesync/internal/engine/source"
	"eops/ratesync/internal/engine/zone"
	"eops/ratesync/internal/worker"
	"eops/ratesync/pkg/config"
	"eops/ratesync/pkg/infra/mysql"
	infraredis "eops/ratesync/pkg/infra/redis"
	"eops/ratesync/pkg/lmstfy"
	"eops/ratesync/pkg/logger"
)

var (
	configPath = flag.String("config", "./config/worker.yaml", "配置文件路径")
)

func main() {
	flag.Parse()

	// 1. 初始化日志
	log.Println("========================================")
	log.Println("  RATESYNC Worker Starting...")
	log.Println("========================================")

	// 2. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	log.Printf("Config loaded: %s, env: %s, log_level: %s\n", cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)

	// 3. 初始化 Logger
	zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// 4. 初始化基础设施（MySQL / Redis / Lmstfy）
	db, err := mysql.Open(cfg.MySQL.DSN)
	if err != nil {
		log.Fatalf("Failed to open mysql: %v", err)
	}
	defer mysql.Close(db)

	rdb, err := infraredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer rdb.Close()

	lmstfyClient, err := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token)
	if err != nil {
		log.Fatalf("Failed to create lmstfy client: %v", err)
	}

	// 5. 组装数据访问层
	courierDAO := mysql.NewCourierDAO(db)
	postDAO := mysql.NewPostDAO(db)
	tariffDAO := mysql.NewTariffDAO(db)
	policyDAO := mysql.NewPolicyDAO(db)
	fxDAO := mysql.NewFxDAO(db)
	productDAO := mysql.NewProductDAO(db)

	fxCache := infraredis.NewFxCache(rdb, fxDAO, cfg.Engine.FxCacheTTL, zapLogger)
	notifier := infraredis.NewNotifier(rdb)

	// 6. 组装计算引擎
	resolver := zone.NewResolver(map[string]zone.Repo{
		source.IDCourier: courierDAO,
		source.IDPost:    postDAO,
	})

	aggregator := aggregate.NewAggregator(
		resolver,
		[]source.Client{
			source.NewCourierClient(courierDAO),
			source.NewPostClient(postDAO),
		},
		fxCache,
		aggregate.Config{SourceTimeout: cfg.Engine.SourceTimeout},
		zapLogger,
	)

	pricingEngine := pricing.NewEngine(cfg.Engine.DivergenceTolerance)

	// 7. 组装业务服务
	var callbackQueue string
	if len(cfg.Workers) > 0 {
		callbackQueue = cfg.Workers[0].CallbackQueue
	}
	if callbackQueue == "" {
		log.Fatalf("callback_queue is required in worker config")
	}

	quoteService := business.NewQuoteService(aggregator, lmstfyClient, callbackQueue, zapLogger)
	pricingService := business.NewPricingService(business.PricingDeps{
		Engine:        pricingEngine,
		Tariffs:       tariffDAO,
		Policies:      policyDAO,
		Products:      productDAO,
		Fx:            fxCache,
		Notifier:      notifier,
		NotifyChannel: cfg.Engine.NotifyChannel,
		OtherZoneCode: cfg.Engine.OtherZoneCode,
		Publisher:     lmstfyClient,
		CallbackQueue: callbackQueue,
		Logger:        zapLogger,
	})

	// 8. 创建 Manager
	mgr, err := worker.NewManagerInstance(cfg, worker.Deps{
		LmstfyClient: lmstfyClient,
		Quote:        quoteService,
		Pricing:      pricingService,
	}, zapLogger)
	if err != nil {
		log.Fatalf("Failed to create manager: %v", err)
	}

	// 9. 启动 Manager（goroutine）
	go func() {
		if err := mgr.Start(); err != nil {
			log.Fatalf("Manager start failed: %v", err)
		}
	}()

	log.Println("Worker started. Press Ctrl+C to shutdown.")

	// 10. 等待退出信号
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Println("========================================")
	log.Printf("  Received signal: %v\n", sig)
	log.Println("  Shutting down Worker...")
	log.Println("========================================")

	// 11. 优雅关闭 Manager
	mgr.Shutdown()

	fmt.Println("========================================")
	fmt.Println("  Worker exited gracefully")
	fmt.Println("========================================")
}
