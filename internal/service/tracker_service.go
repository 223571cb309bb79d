package service

import (
	"PriceTracker/internal/api/dto"
	"PriceTracker/internal/pkg/consts"
	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/redis"
	"context"
	log "log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrackerService interface {
	AddTracking(ctx context.Context, userID int64, product *mongo.Product) (string, bool, error)
	RemoveTracking(ctx context.Context, trackingID string, userID int64) (bool, error)
	ListTrackings(ctx context.Context, userID int64) ([]*dto.TrackingItemDTO, error)
	GetTracking(ctx context.Context, trackingID string, userID int64) (*dto.TrackingDetailDTO, error)
}

type TrackerServiceImpl struct {
	productRepo  mongo.ProductRepo
	trackingRepo mongo.TrackingRepo
}

func NewTrackerService(productRepo mongo.ProductRepo, trackingRepo mongo.TrackingRepo) TrackerService {
	return &TrackerServiceImpl{
		productRepo:  productRepo,
		trackingRepo: trackingRepo,
	}
}

// NormalizeName 商品名归一化：小写并压缩空白，作为全局去重键。
// 原名保留在 product_name 字段用于展示。
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// AddTracking 为用户建立一条追踪。
// 全局商品按归一化名称去重：不存在则以当前价格初始化四个价格字段；
// 已存在则只刷新链接（同一商品可能带着更新的联盟链接被再次提交），价格字段不动。
// 返回 (tracking id, 是否新建)。同一用户重复追踪同一商品时返回已有记录。
func (s *TrackerServiceImpl) AddTracking(ctx context.Context, userID int64, product *mongo.Product) (string, bool, error) {
	nameKey := NormalizeName(product.ProductName)

	existing, err := s.productRepo.GetByNameKey(ctx, nameKey)
	if err != nil {
		return "", false, err
	}

	var productID primitive.ObjectID
	if existing == nil {
		productID, err = s.productRepo.Insert(ctx, &mongo.Product{
			ProductName:   product.ProductName,
			NameKey:       nameKey,
			URL:           product.URL,
			AffiliateURL:  product.AffiliateURL,
			Price:         product.Price,
			PreviousPrice: product.Price,
			Upper:         product.Price,
			Lower:         product.Price,
			Available:     product.Available,
			ImageURL:      product.ImageURL,
		})
		if err != nil {
			return "", false, err
		}
		log.InfoContext(ctx, "new global product added", "name", product.ProductName)
	} else {
		productID = existing.ID
		if err = s.productRepo.UpdateLinks(ctx, productID, product.URL, product.AffiliateURL); err != nil {
			return "", false, err
		}
	}

	tracking, err := s.trackingRepo.GetByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return "", false, err
	}
	if tracking != nil {
		return tracking.ID.Hex(), false, nil
	}

	trackingID, err := s.trackingRepo.Insert(ctx, &mongo.Tracking{
		UserID:    userID,
		ProductID: productID,
	})
	if err != nil {
		return "", false, err
	}

	s.invalidateListCache(ctx, userID)
	return trackingID.Hex(), true, nil
}

// RemoveTracking 删除用户自己的追踪记录，返回是否确实删除。
// 最后一个追踪者离开时级联删除全局商品；级联失败只记日志，不影响返回值。
func (s *TrackerServiceImpl) RemoveTracking(ctx context.Context, trackingID string, userID int64) (bool, error) {
	id, err := primitive.ObjectIDFromHex(trackingID)
	if err != nil {
		return false, nil
	}

	tracking, err := s.trackingRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if tracking == nil {
		return false, nil
	}

	deleted, err := s.trackingRepo.Delete(ctx, id, userID)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	s.invalidateListCache(ctx, userID)

	remaining, err := s.trackingRepo.CountByProduct(ctx, tracking.ProductID)
	if err != nil {
		log.ErrorContext(ctx, "count trackings for cascade failed", "product_id", tracking.ProductID.Hex(), "err", err)
		return true, nil
	}
	if remaining == 0 {
		if err = s.productRepo.Delete(ctx, tracking.ProductID); err != nil {
			log.ErrorContext(ctx, "cascade delete product failed", "product_id", tracking.ProductID.Hex(), "err", err)
		} else {
			log.InfoContext(ctx, "global product deleted, no trackers left", "product_id", tracking.ProductID.Hex())
		}
	}

	return true, nil
}

// ListTrackings 用户追踪列表（与全局商品拼接），带 Redis 缓存
func (s *TrackerServiceImpl) ListTrackings(ctx context.Context, userID int64) ([]*dto.TrackingItemDTO, error) {
	if cached := s.getListCache(ctx, userID); cached != nil {
		return cached, nil
	}

	trackings, err := s.trackingRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TrackingItemDTO, 0, len(trackings))
	for _, tracking := range trackings {
		product, err := s.productRepo.GetByID(ctx, tracking.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		items = append(items, &dto.TrackingItemDTO{
			TrackingID:   tracking.ID.Hex(),
			ProductName:  product.ProductName,
			Price:        product.Price,
			AffiliateURL: product.AffiliateURL,
			Available:    product.Available,
		})
	}

	s.setListCache(ctx, userID, items)
	return items, nil
}

// GetTracking 单条追踪详情，含历史最高/最低价
func (s *TrackerServiceImpl) GetTracking(ctx context.Context, trackingID string, userID int64) (*dto.TrackingDetailDTO, error) {
	id, err := primitive.ObjectIDFromHex(trackingID)
	if err != nil {
		return nil, ErrTrackingNotFound
	}

	tracking, err := s.trackingRepo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if tracking == nil {
		return nil, ErrTrackingNotFound
	}

	product, err := s.productRepo.GetByID(ctx, tracking.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return &dto.TrackingDetailDTO{
		TrackingID:    tracking.ID.Hex(),
		ProductName:   product.ProductName,
		Price:         product.Price,
		PreviousPrice: product.PreviousPrice,
		Upper:         product.Upper,
		Lower:         product.Lower,
		AffiliateURL:  product.AffiliateURL,
		Available:     product.Available,
		ImageURL:      product.ImageURL,
		UpdatedAt:     product.UpdatedAt,
	}, nil
}

// 缓存为 best-effort：Redis 不可用时直接回源
func (s *TrackerServiceImpl) getListCache(ctx context.Context, userID int64) []*dto.TrackingItemDTO {
	if redis.GetRdbClient() == nil {
		return nil
	}
	raw, err := redis.GetValue(ctx, listCacheKey(userID))
	if err != nil || raw == "" {
		return nil
	}
	var items []*dto.TrackingItemDTO
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil
	}
	return items
}

func (s *TrackerServiceImpl) setListCache(ctx context.Context, userID int64, items []*dto.TrackingItemDTO) {
	if redis.GetRdbClient() == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	_ = redis.SetWithExpiration(ctx, listCacheKey(userID), string(raw), consts.UserTrackingListTTL*time.Second)
}

func (s *TrackerServiceImpl) invalidateListCache(ctx context.Context, userID int64) {
	if redis.GetRdbClient() == nil {
		return
	}
	if err := redis.DeleteKey(ctx, listCacheKey(userID)); err != nil {
		log.ErrorContext(ctx, "invalidate tracking list cache failed", "user_id", userID, "err", err)
	}
}

func listCacheKey(userID int64) string {
	return consts.UserTrackingListKey + strconv.FormatInt(userID, 10)
}
