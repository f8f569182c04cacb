package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"eops/ratesync/internal/business"
	"eops/ratesync/internal/engine/pricing"
	"eops/ratesync/internal/model"
	"eops/ratesync/pkg/config"
	"eops/ratesync/pkg/infra/mysql"
	infraredis "eops/ratesync/pkg/infra/redis"
	"eops/ratesync/pkg/logger"
)

var (
	configPath   = flag.String("config", "./config/worker.yaml", "配置文件路径")
	testcasePath = flag.String("testcase", "./tools/fasttest/testcase/pricing.json", "测试用例路径")
	skipDB       = flag.Bool("skip-db", false, "跳过数据库操作（仅测试定价引擎）")
)

// TestCase 测试用例结构
type TestCase struct {
	ProductID    string  `json:"product_id"`
	CostJPY      float64 `json:"cost_jpy"`
	WeightKG     float64 `json:"weight_kg"`
	HTSCode      string  `json:"hts_code"`
	TargetMargin float64 `json:"target_margin"`
}

// stdoutPublisher 回调打印到控制台（不走队列）
type stdoutPublisher struct{}

func (stdoutPublisher) Publish(queue string, data []byte, ttl, delay uint32) error {
	fmt.Printf("  Callback → queue=%s payload=%s\n", queue, string(data))
	return nil
}

func main() {
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("  FastTest - RATESYNC Worker 快速测试工具")
	fmt.Println("========================================")

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Config loaded: %s\n", cfg.App.Name)

	// 2. 加载测试用例
	testCases, err := loadTestCases(*testcasePath)
	if err != nil {
		fmt.Printf("❌ Failed to load test cases: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Loaded %d test cases from %s\n", len(testCases), *testcasePath)

	// 3. 初始化依赖（根据 skip-db 参数决定）
	var pricingService *business.PricingService
	engine := pricing.NewEngine(cfg.Engine.DivergenceTolerance)

	if *skipDB {
		fmt.Println("⚠️  Skip-DB mode: Database and Redis operations disabled")
	} else {
		zapLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
		if err != nil {
			fmt.Printf("❌ Failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer zapLogger.Sync()

		db, err := mysql.Open(cfg.MySQL.DSN)
		if err != nil {
			fmt.Printf("❌ Failed to open mysql: %v\n", err)
			os.Exit(1)
		}
		defer mysql.Close(db)

		rdb, err := infraredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			fmt.Printf("❌ Failed to connect redis: %v\n", err)
			os.Exit(1)
		}
		defer rdb.Close()

		fxCache := infraredis.NewFxCache(rdb, mysql.NewFxDAO(db), cfg.Engine.FxCacheTTL, zapLogger)

		pricingService = business.NewPricingService(business.PricingDeps{
			Engine:        engine,
			Tariffs:       mysql.NewTariffDAO(db),
			Policies:      mysql.NewPolicyDAO(db),
			Products:      mysql.NewProductDAO(db),
			Fx:            fxCache,
			Notifier:      infraredis.NewNotifier(rdb),
			NotifyChannel: cfg.Engine.NotifyChannel,
			OtherZoneCode: cfg.Engine.OtherZoneCode,
			Publisher:     stdoutPublisher{},
			CallbackQueue: "fasttest_callbacks",
			Logger:        zapLogger,
		})
		fmt.Println("✅ Database and Redis initialized")
	}

	// 4. 执行测试用例
	fmt.Println("\n========================================")
	fmt.Println("  Running Test Cases")
	fmt.Println("========================================")

	successCount := 0
	failureCount := 0

	for i, tc := range testCases {
		fmt.Printf("\n[Test %d/%d] ProductID=%s, CostJPY=%.0f, TargetMargin=%.2f\n",
			i+1, len(testCases), tc.ProductID, tc.CostJPY, tc.TargetMargin)
		fmt.Println("----------------------------------------")

		startTime := time.Now()

		if *skipDB {
			err = runTestCaseSkipDB(engine, tc)
		} else {
			err = runTestCaseFull(pricingService, tc)
		}

		duration := time.Since(startTime)

		if err != nil {
			fmt.Printf("❌ FAILED: %v\n", err)
			fmt.Printf("⏱️  Duration: %v\n", duration)
			failureCount++
		} else {
			fmt.Printf("✅ PASSED\n")
			fmt.Printf("⏱️  Duration: %v\n", duration)
			successCount++
		}
	}

	// 5. 输出测试汇总
	fmt.Println("\n========================================")
	fmt.Println("  Test Summary")
	fmt.Println("========================================")
	fmt.Printf("Total: %d\n", len(testCases))
	fmt.Printf("Passed: %d ✅\n", successCount)
	fmt.Printf("Failed: %d ❌\n", failureCount)

	if failureCount > 0 {
		os.Exit(1)
	}
}

// loadTestCases 从 JSON 文件加载测试用例
func loadTestCases(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read testcase file: %w", err)
	}

	var testCases []TestCase
	if err := json.Unmarshal(data, &testCases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal testcase: %w", err)
	}

	return testCases, nil
}

// runTestCaseSkipDB 运行测试用例（跳过数据库，固定区域费率直接反解售价）
func runTestCaseSkipDB(engine *pricing.Engine, tc TestCase) error {
	fxRate := infraredis.FallbackFxRate
	costUSD := tc.CostJPY / fxRate
	refundUSD := tc.CostJPY * 0.10 / 1.10 / fxRate

	out, err := engine.Reverse(pricing.ReverseInput{
		CostUSD:      costUSD,
		TaxRefundUSD: refundUSD,
		TargetMargin: tc.TargetMargin,
		Reference: pricing.ZoneQuote{
			ZoneCode:           "US",
			Basis:              model.PricingBasisDDP,
			ActualCostUSD:      18.0,
			DisplayShippingUSD: 9.9,
			HandlingFeeUSD:     2.0,
		},
		Others: []pricing.ZoneQuote{
			{
				ZoneCode:           "FM",
				Basis:              model.PricingBasisDDU,
				ActualCostUSD:      24.0,
				DisplayShippingUSD: 12.9,
				HandlingFeeUSD:     2.0,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("reverse pricing failed: %w", err)
	}

	// 打印定价结果
	fmt.Printf("  PriceUSD: %.2f (fx=%.1f)\n", out.PriceUSD, fxRate)
	fmt.Printf("    - Zone=%s, Margin=%.4f, Profit=%.2f\n",
		out.Reference.Quote.ZoneCode, out.Reference.RealizedMargin, out.Reference.NetProfitUSD)
	for _, o := range out.Others {
		fmt.Printf("    - Zone=%s, Margin=%.4f, Profit=%.2f\n",
			o.Quote.ZoneCode, o.RealizedMargin, o.NetProfitUSD)
	}
	if out.Diverged {
		fmt.Println("    ⚠️  margin divergence exceeds tolerance")
	}

	return nil
}

// runTestCaseFull 运行测试用例（完整模式：定价 + 回写 + Redis 通知）
func runTestCaseFull(pricingService *business.PricingService, tc TestCase) error {
	ctx := context.Background()

	req := &model.PricingRequest{
		ProductID:    tc.ProductID,
		CostJPY:      tc.CostJPY,
		WeightKG:     tc.WeightKG,
		HTSCode:      tc.HTSCode,
		TargetMargin: tc.TargetMargin,
	}

	if err := pricingService.ExecutePricing(ctx, fmt.Sprintf("fasttest-%s", tc.ProductID), req); err != nil {
		return fmt.Errorf("pricing failed: %w", err)
	}

	fmt.Println("  ✓ Database updated")
	fmt.Println("  ✓ Redis notification sent")

	return nil
}
