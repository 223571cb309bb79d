package wire

import (
	"PriceTracker/internal/api"
	"PriceTracker/internal/api/config"
	"PriceTracker/internal/api/handler"
	"PriceTracker/internal/job"
	"PriceTracker/internal/pkg/affiliate"
	"PriceTracker/internal/pkg/cron"
	pkgmongo "PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/scraper"
	"PriceTracker/internal/pkg/telegram"
	"PriceTracker/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *mongo.Database
	CronMgr *cron.Manager
}

func BuildApplication(appCtx context.Context, db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	productRepo := pkgmongo.NewProductRepo(db)
	trackingRepo := pkgmongo.NewTrackingRepo(db)
	userRepo := pkgmongo.NewUserRepo(db)

	productScraper := scraper.NewScraper(cfg.Scraper)
	converter := affiliate.NewConverter(cfg.Affiliate)
	sender := telegram.NewSender(cfg.Telegram)

	trackerService := service.NewTrackerService(productRepo, trackingRepo)
	notifier := service.NewNotifier(productRepo, trackingRepo, sender)
	userService := service.NewUserService(userRepo, sender)

	priceCheckJob := job.NewPriceCheckJob(
		appCtx,
		productRepo,
		productScraper,
		notifier,
		time.Duration(cfg.Tracker.ItemDelay)*time.Millisecond,
	)
	cronMgr := cron.NewCronManager(priceCheckJob, time.Duration(cfg.Tracker.CheckInterval)*time.Second)

	handlers := &api.HandlersGroup{
		TrackingHandler: handler.NewTrackingHandler(trackerService, converter, productScraper),
		UserHandler:     handler.NewUserHandler(userService),
	}

	router := api.SetupRouter(handlers)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
