package handler

import (
	"PriceTracker/internal/api/dto"
	"PriceTracker/internal/pkg/affiliate"
	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/response"
	"PriceTracker/internal/pkg/scraper"
	"PriceTracker/internal/pkg/urlutil"
	"PriceTracker/internal/pkg/util"
	"PriceTracker/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type TrackingHandler struct {
	trackerSvc service.TrackerService
	converter  affiliate.Converter
	scraper    scraper.Scraper
}

func NewTrackingHandler(trackerSvc service.TrackerService, converter affiliate.Converter, scraper scraper.Scraper) *TrackingHandler {
	return &TrackingHandler{
		trackerSvc: trackerSvc,
		converter:  converter,
		scraper:    scraper,
	}
}

// Track 提交一个商品链接开始追踪。
// 流程：提取 URL -> 展开短链 -> 平台识别 -> 联盟链接转换 -> 抓取 -> 建立追踪。
// 转换或抓取失败时直接报错返回，不会留下半成品记录。
func (s *TrackingHandler) Track(c *gin.Context) {
	var req dto.TrackRequestDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetInt64("user_id")
	ctx := c.Request.Context()

	urls := urlutil.ExtractURLs(req.URL)
	if len(urls) == 0 {
		response.Error(c, service.ErrNoURLFound)
		return
	}

	expandedURL := urlutil.ExpandShortURL(ctx, urls[0])

	platform := urlutil.ClassifyPlatform(expandedURL)
	if platform == "" {
		response.Error(c, service.ErrUnsupportedPlatform)
		return
	}

	affiliateURL, err := s.converter.Convert(ctx, expandedURL)
	if err != nil {
		log.ErrorContext(ctx, "affiliate conversion failed", "url", expandedURL, "err", err)
		response.Error(c, service.ErrConvertFailed)
		return
	}

	result, err := s.scraper.Scrape(ctx, affiliateURL, platform)
	if err != nil {
		log.ErrorContext(ctx, "scrape on track request failed", "url", affiliateURL, "err", err)
		response.Error(c, service.ErrScrapeFailed)
		return
	}

	price := result.Price
	if !result.Available {
		price = 0
	}

	trackingID, isNew, err := s.trackerSvc.AddTracking(ctx, userID, &mongo.Product{
		ProductName:  result.ProductName,
		URL:          expandedURL,
		AffiliateURL: affiliateURL,
		Price:        price,
		Available:    result.Available,
		ImageURL:     result.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.TrackResultDTO{
		TrackingID:   trackingID,
		IsNew:        isNew,
		ProductName:  result.ProductName,
		Price:        price,
		Available:    result.Available,
		Platform:     platform,
		AffiliateURL: affiliateURL,
		ImageURL:     result.ImageURL,
	})
}

// List 当前用户的追踪列表
func (s *TrackingHandler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	items, err := s.trackerSvc.ListTrackings(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// Detail 单条追踪详情
func (s *TrackingHandler) Detail(c *gin.Context) {
	userID := c.GetInt64("user_id")
	trackingID := c.Param("tracking_id")
	if trackingID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	detail, err := s.trackerSvc.GetTracking(c.Request.Context(), trackingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// Remove 停止追踪
func (s *TrackingHandler) Remove(c *gin.Context) {
	userID := c.GetInt64("user_id")
	trackingID := c.Param("tracking_id")
	if trackingID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	deleted, err := s.trackerSvc.RemoveTracking(c.Request.Context(), trackingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, service.ErrTrackingNotFound)
		return
	}
	response.Success(c, nil)
}
