package service

import (
	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/pkg/pricing"
	"PriceTracker/internal/pkg/telegram"
	"context"
	"fmt"
	log "log/slog"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notifier interface {
	NotifyPriceChanges(ctx context.Context, changedIDs []primitive.ObjectID)
}

type NotifierImpl struct {
	productRepo  mongo.ProductRepo
	trackingRepo mongo.TrackingRepo
	sender       telegram.Sender
}

func NewNotifier(productRepo mongo.ProductRepo, trackingRepo mongo.TrackingRepo, sender telegram.Sender) Notifier {
	return &NotifierImpl{
		productRepo:  productRepo,
		trackingRepo: trackingRepo,
		sender:       sender,
	}
}

// NotifyPriceChanges 将价格变动扇出给每个追踪者。
// 单个商品或单个收件人的失败只记日志，不影响其余投递；
// 本轮没送达的不会重试（每轮 at-most-once）。
func (s *NotifierImpl) NotifyPriceChanges(ctx context.Context, changedIDs []primitive.ObjectID) {
	for _, productID := range changedIDs {
		if ctx.Err() != nil {
			return
		}
		s.notifyOne(ctx, productID)
	}
}

func (s *NotifierImpl) notifyOne(ctx context.Context, productID primitive.ObjectID) {
	// 重新加载，拿到巡检更新后的最新状态
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		log.ErrorContext(ctx, "load changed product failed", "product_id", productID.Hex(), "err", err)
		return
	}
	if product == nil {
		return
	}

	change, err := pricing.Compare(product.Price, product.PreviousPrice)
	if err != nil {
		log.ErrorContext(ctx, "compare prices failed", "product_id", productID.Hex(), "err", err)
		return
	}
	if change.Amount == 0 || change.Direction == pricing.Unchanged {
		return
	}

	message := composeMessage(product, change)

	trackings, err := s.trackingRepo.GetByProduct(ctx, productID)
	if err != nil {
		log.ErrorContext(ctx, "resolve recipients failed", "product_id", productID.Hex(), "err", err)
		return
	}

	for _, tracking := range trackings {
		if ctx.Err() != nil {
			return
		}
		if err := s.sender.SendMessage(ctx, tracking.UserID, message); err != nil {
			log.ErrorContext(ctx, "send price change message failed",
				"user_id", tracking.UserID,
				"product_id", productID.Hex(),
				"err", err)
		}
	}
}

func composeMessage(product *mongo.Product, change pricing.Change) string {
	var header string
	switch change.Direction {
	case pricing.Increased:
		header = fmt.Sprintf("🚨 The price of **%s** has **increased** by ₹%s.", product.ProductName, formatPrice(change.Amount))
	case pricing.Decreased:
		header = fmt.Sprintf("🎉 The price of **%s** has **decreased** by ₹%s.", product.ProductName, formatPrice(change.Amount))
	}

	return fmt.Sprintf("%s\n"+
		"   - Previous Price: ₹%s\n"+
		"   - Current Price: ₹%s\n"+
		"   - [Check it out here](%s)",
		header,
		formatPrice(product.PreviousPrice),
		formatPrice(product.Price),
		product.AffiliateURL,
	)
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
