package service_test

import (
	"context"
	"time"

	pkgmongo "PriceTracker/internal/pkg/mongo"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 内存版存储，行为对齐 mongo 实现：未命中返回 nil，
// UpdatePrice 为条件更新并维护 $min/$max 语义。

type fakeProductRepo struct {
	products map[primitive.ObjectID]*pkgmongo.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[primitive.ObjectID]*pkgmongo.Product)}
}

func (s *fakeProductRepo) GetByNameKey(_ context.Context, nameKey string) (*pkgmongo.Product, error) {
	for _, p := range s.products {
		if p.NameKey == nameKey {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (*pkgmongo.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *fakeProductRepo) GetAll(_ context.Context) ([]*pkgmongo.Product, error) {
	all := make([]*pkgmongo.Product, 0, len(s.products))
	for _, p := range s.products {
		clone := *p
		all = append(all, &clone)
	}
	return all, nil
}

func (s *fakeProductRepo) Insert(_ context.Context, product *pkgmongo.Product) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *product
	clone.ID = id
	clone.UpdatedAt = time.Now()
	s.products[id] = &clone
	return id, nil
}

func (s *fakeProductRepo) UpdateLinks(_ context.Context, id primitive.ObjectID, url, affiliateURL string) error {
	if p, ok := s.products[id]; ok {
		p.URL = url
		p.AffiliateURL = affiliateURL
	}
	return nil
}

func (s *fakeProductRepo) UpdatePrice(_ context.Context, id primitive.ObjectID, oldPrice, newPrice float64, available bool) (bool, error) {
	p, ok := s.products[id]
	if !ok || p.Price != oldPrice {
		return false, nil
	}
	p.PreviousPrice = oldPrice
	p.Price = newPrice
	p.Available = available
	if newPrice < p.Lower {
		p.Lower = newPrice
	}
	if newPrice > p.Upper {
		p.Upper = newPrice
	}
	p.UpdatedAt = time.Now()
	return true, nil
}

func (s *fakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(s.products, id)
	return nil
}

type fakeTrackingRepo struct {
	trackings map[primitive.ObjectID]*pkgmongo.Tracking
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{trackings: make(map[primitive.ObjectID]*pkgmongo.Tracking)}
}

func (s *fakeTrackingRepo) GetByUserAndProduct(_ context.Context, userID int64, productID primitive.ObjectID) (*pkgmongo.Tracking, error) {
	for _, t := range s.trackings {
		if t.UserID == userID && t.ProductID == productID {
			clone := *t
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *fakeTrackingRepo) GetByIDAndUser(_ context.Context, id primitive.ObjectID, userID int64) (*pkgmongo.Tracking, error) {
	t, ok := s.trackings[id]
	if !ok || t.UserID != userID {
		return nil, nil
	}
	clone := *t
	return &clone, nil
}

func (s *fakeTrackingRepo) GetByUser(_ context.Context, userID int64) ([]*pkgmongo.Tracking, error) {
	var result []*pkgmongo.Tracking
	for _, t := range s.trackings {
		if t.UserID == userID {
			clone := *t
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *fakeTrackingRepo) GetByProduct(_ context.Context, productID primitive.ObjectID) ([]*pkgmongo.Tracking, error) {
	var result []*pkgmongo.Tracking
	for _, t := range s.trackings {
		if t.ProductID == productID {
			clone := *t
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *fakeTrackingRepo) CountByProduct(_ context.Context, productID primitive.ObjectID) (int64, error) {
	var count int64
	for _, t := range s.trackings {
		if t.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (s *fakeTrackingRepo) Insert(_ context.Context, tracking *pkgmongo.Tracking) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	clone := *tracking
	clone.ID = id
	clone.CreatedAt = time.Now()
	s.trackings[id] = &clone
	return id, nil
}

func (s *fakeTrackingRepo) Delete(_ context.Context, id primitive.ObjectID, userID int64) (bool, error) {
	t, ok := s.trackings[id]
	if !ok || t.UserID != userID {
		return false, nil
	}
	delete(s.trackings, id)
	return true, nil
}
