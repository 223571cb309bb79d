package job

import (
	"PriceTracker/internal/pkg/logger"
	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/scraper"
	"PriceTracker/internal/pkg/urlutil"
	"PriceTracker/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PriceCheckJob 价格巡检：全量扫描全局商品，重新抓价、更新区间、
// 收集发生变动的商品并交给通知器。
// cron 侧用 SkipIfStillRunning 包装，两轮巡检不会重叠。
type PriceCheckJob struct {
	productRepo mongo.ProductRepo
	scraper     scraper.Scraper
	notifier    service.Notifier

	appCtx    context.Context // 进程级 ctx，停机信号在商品之间被观察到
	itemDelay time.Duration   // 相邻商品之间的抓取间隔，对抓取端限速
	sleep     func(ctx context.Context, d time.Duration)
}

func NewPriceCheckJob(
	appCtx context.Context,
	productRepo mongo.ProductRepo,
	scraper scraper.Scraper,
	notifier service.Notifier,
	itemDelay time.Duration,
) *PriceCheckJob {
	return &PriceCheckJob{
		productRepo: productRepo,
		scraper:     scraper,
		notifier:    notifier,
		appCtx:      appCtx,
		itemDelay:   itemDelay,
		sleep:       sleepWithContext,
	}
}

func (s *PriceCheckJob) Run() {
	traceID := "job-pricecheck-" + uuid.NewString()
	ctx := logger.WithTraceID(s.appCtx, traceID)

	started := time.Now()
	log.InfoContext(ctx, "price check cycle started")

	changed := s.scan(ctx)

	if ctx.Err() != nil {
		log.InfoContext(ctx, "price check cycle cancelled", "changed", len(changed))
		return
	}

	s.notifier.NotifyPriceChanges(ctx, changed)

	log.InfoContext(ctx, "price check cycle completed",
		"changed", len(changed),
		"elapsed", time.Since(started))
}

// scan 逐个商品重新抓价。单个商品失败只记日志并继续。
func (s *PriceCheckJob) scan(ctx context.Context) []primitive.ObjectID {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		log.ErrorContext(ctx, "load products for price check failed", "err", err)
		return nil
	}

	var changed []primitive.ObjectID
	for i, product := range products {
		if ctx.Err() != nil {
			return changed
		}

		if s.checkOne(ctx, product) {
			changed = append(changed, product.ID)
		}

		if i < len(products)-1 {
			s.sleep(ctx, s.itemDelay)
		}
	}

	return changed
}

// checkOne 返回该商品价格是否发生变动并已落库
func (s *PriceCheckJob) checkOne(ctx context.Context, product *mongo.Product) bool {
	platform := urlutil.ClassifyPlatform(product.URL)
	if platform == "" {
		log.WarnContext(ctx, "product url has no known platform", "product_id", product.ID.Hex(), "url", product.URL)
		return false
	}

	result, err := s.scraper.Scrape(ctx, product.URL, platform)
	if err != nil {
		log.ErrorContext(ctx, "scrape product failed", "product_id", product.ID.Hex(), "url", product.URL, "err", err)
		return false
	}

	// 下架商品的价格按 0 处理，与抓取端的约定一致
	newPrice := result.Price
	if !result.Available {
		newPrice = 0
	}

	if newPrice == product.Price {
		return false
	}

	applied, err := s.productRepo.UpdatePrice(ctx, product.ID, product.Price, newPrice, result.Available)
	if err != nil {
		log.ErrorContext(ctx, "update product price failed", "product_id", product.ID.Hex(), "err", err)
		return false
	}
	if !applied {
		// 价格被并发写入者抢先修改，留给下一轮
		log.WarnContext(ctx, "price update lost the race, skipping", "product_id", product.ID.Hex())
		return false
	}

	log.InfoContext(ctx, "product price updated",
		"product_id", product.ID.Hex(),
		"old", product.Price,
		"new", newPrice)
	return true
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
