package service_test

import (
	"context"
	"testing"

	"PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 端到端走一遍核心流程：A 开始追踪，一轮巡检发现降价，
// 只有 A 收到降价通知，随后 B 追踪同名商品复用同一条全局记录。
func TestTrackThenPriceDropScenario(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	sender := newFakeSender()
	svc := service.NewTrackerService(productRepo, trackingRepo)
	notifier := service.NewNotifier(productRepo, trackingRepo, sender)

	ctx := context.Background()

	// A 以 100 的价格开始追踪
	_, isNew, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)
	require.True(t, isNew)

	var productID primitive.ObjectID
	var product *mongo.Product
	for id, p := range productRepo.products {
		productID, product = id, p
	}
	assert.Equal(t, 100.0, product.Price)
	assert.Equal(t, 100.0, product.PreviousPrice)
	assert.Equal(t, 100.0, product.Upper)
	assert.Equal(t, 100.0, product.Lower)

	// 与 A 无关的旁观者
	otherID, err := productRepo.Insert(ctx, &mongo.Product{ProductName: "Gadget", NameKey: "gadget", Price: 50})
	require.NoError(t, err)
	_, err = trackingRepo.Insert(ctx, &mongo.Tracking{UserID: 9, ProductID: otherID})
	require.NoError(t, err)

	// 巡检发现价格降到 90
	applied, err := productRepo.UpdatePrice(ctx, productID, 100, 90, true)
	require.NoError(t, err)
	require.True(t, applied)

	updated := productRepo.products[productID]
	assert.Equal(t, 90.0, updated.Price)
	assert.Equal(t, 100.0, updated.PreviousPrice)
	assert.Equal(t, 100.0, updated.Upper)
	assert.Equal(t, 90.0, updated.Lower)

	notifier.NotifyPriceChanges(ctx, []primitive.ObjectID{productID})

	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(1), sender.sent[0].chatID)
	assert.Contains(t, sender.sent[0].text, "decreased")
	assert.Contains(t, sender.sent[0].text, "₹10")

	// B 追踪同名商品：复用全局记录，对 B 仍是新追踪
	_, isNew, err = svc.AddTracking(ctx, 2, newWidget(90))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Len(t, productRepo.products, 2) // Widget + Gadget，没有重复的 Widget
	assert.Equal(t, 90.0, productRepo.products[productID].Price)
}
