package service_test

import (
	"context"
	"testing"

	pkgmongo "PriceTracker/internal/pkg/mongo"
	"PriceTracker/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWidget(price float64) *pkgmongo.Product {
	return &pkgmongo.Product{
		ProductName:  "Widget",
		URL:          "https://www.amazon.in/dp/widget",
		AffiliateURL: "https://aff.example/widget",
		Price:        price,
		Available:    true,
	}
}

func TestAddTrackingCreatesGlobalProduct(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	trackingID, isNew, err := svc.AddTracking(context.Background(), 1, newWidget(100))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.NotEmpty(t, trackingID)

	require.Len(t, productRepo.products, 1)
	for _, p := range productRepo.products {
		assert.Equal(t, 100.0, p.Price)
		assert.Equal(t, 100.0, p.PreviousPrice)
		assert.Equal(t, 100.0, p.Upper)
		assert.Equal(t, 100.0, p.Lower)
		assert.Equal(t, "widget", p.NameKey)
	}
}

// 多个用户追踪同名商品时全局商品只有一条，每人各有一条追踪记录
func TestAddTrackingDeduplicatesByName(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	for userID := int64(1); userID <= 5; userID++ {
		_, isNew, err := svc.AddTracking(ctx, userID, newWidget(100))
		require.NoError(t, err)
		assert.True(t, isNew)
	}

	assert.Len(t, productRepo.products, 1)
	assert.Len(t, trackingRepo.trackings, 5)
}

// 名称只差大小写和空白时仍视为同一商品
func TestAddTrackingNormalizesName(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	first := newWidget(100)
	first.ProductName = "Super  Widget Pro"
	_, _, err := svc.AddTracking(ctx, 1, first)
	require.NoError(t, err)

	second := newWidget(100)
	second.ProductName = "super widget   pro"
	_, isNew, err := svc.AddTracking(ctx, 2, second)
	require.NoError(t, err)
	assert.True(t, isNew)

	assert.Len(t, productRepo.products, 1)
}

// 同一用户重复追踪：返回同一个 tracking id，第二次 is_new=false
func TestAddTrackingIdempotent(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	firstID, isNew, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)
	assert.True(t, isNew)

	secondID, isNew, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, firstID, secondID)

	assert.Len(t, trackingRepo.trackings, 1)
}

// 重复提交会刷新链接，但价格字段保持不变
func TestAddTrackingRefreshesLinksOnly(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	_, _, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)

	resubmitted := newWidget(80) // 抓到了更低的价格，但不应覆盖已有价格
	resubmitted.URL = "https://www.amazon.in/dp/widget-v2"
	resubmitted.AffiliateURL = "https://aff.example/widget-v2"
	_, isNew, err := svc.AddTracking(ctx, 2, resubmitted)
	require.NoError(t, err)
	assert.True(t, isNew)

	for _, p := range productRepo.products {
		assert.Equal(t, "https://www.amazon.in/dp/widget-v2", p.URL)
		assert.Equal(t, "https://aff.example/widget-v2", p.AffiliateURL)
		assert.Equal(t, 100.0, p.Price)
		assert.Equal(t, 100.0, p.Lower)
	}
}

// N 个用户逐个取消：全局商品在最后一个取消前一直存在，之后被级联删除
func TestRemoveTrackingCascade(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	const users = 3
	trackingIDs := make(map[int64]string)
	for userID := int64(1); userID <= users; userID++ {
		id, _, err := svc.AddTracking(ctx, userID, newWidget(100))
		require.NoError(t, err)
		trackingIDs[userID] = id
	}

	for userID := int64(1); userID <= users; userID++ {
		deleted, err := svc.RemoveTracking(ctx, trackingIDs[userID], userID)
		require.NoError(t, err)
		assert.True(t, deleted)

		if userID < users {
			assert.Len(t, productRepo.products, 1, "product must survive until last tracker leaves")
		} else {
			assert.Empty(t, productRepo.products, "product must be cascade-deleted with last tracker")
		}
	}
}

// 不能删除别人的追踪记录
func TestRemoveTrackingOwnershipCheck(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	trackingID, _, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)

	deleted, err := svc.RemoveTracking(ctx, trackingID, 2)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.Len(t, trackingRepo.trackings, 1)
	assert.Len(t, productRepo.products, 1)
}

func TestRemoveTrackingUnknownID(t *testing.T) {
	svc := service.NewTrackerService(newFakeProductRepo(), newFakeTrackingRepo())

	deleted, err := svc.RemoveTracking(context.Background(), "not-a-hex-id", 1)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = svc.RemoveTracking(context.Background(), "65f000000000000000000000", 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListTrackings(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	_, _, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)

	gadget := newWidget(250)
	gadget.ProductName = "Gadget"
	_, _, err = svc.AddTracking(ctx, 1, gadget)
	require.NoError(t, err)

	other := newWidget(100)
	_, _, err = svc.AddTracking(ctx, 2, other)
	require.NoError(t, err)

	items, err := svc.ListTrackings(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	names := []string{items[0].ProductName, items[1].ProductName}
	assert.ElementsMatch(t, []string{"Widget", "Gadget"}, names)
}

func TestGetTrackingDetail(t *testing.T) {
	productRepo := newFakeProductRepo()
	trackingRepo := newFakeTrackingRepo()
	svc := service.NewTrackerService(productRepo, trackingRepo)

	ctx := context.Background()
	trackingID, _, err := svc.AddTracking(ctx, 1, newWidget(100))
	require.NoError(t, err)

	detail, err := svc.GetTracking(ctx, trackingID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Widget", detail.ProductName)
	assert.Equal(t, 100.0, detail.Price)
	assert.Equal(t, 100.0, detail.Upper)
	assert.Equal(t, 100.0, detail.Lower)

	_, err = svc.GetTracking(ctx, trackingID, 2)
	assert.ErrorIs(t, err, service.ErrTrackingNotFound)

	_, err = svc.GetTracking(ctx, "bad-id", 1)
	assert.ErrorIs(t, err, service.ErrTrackingNotFound)
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "widget pro max", service.NormalizeName("  Widget   PRO Max "))
	assert.Equal(t, "", service.NormalizeName("   "))
}
