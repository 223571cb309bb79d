package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepo interface {
	GetByNameKey(ctx context.Context, nameKey string) (*Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	GetAll(ctx context.Context) ([]*Product, error)
	Insert(ctx context.Context, product *Product) (primitive.ObjectID, error)
	UpdateLinks(ctx context.Context, id primitive.ObjectID, url, affiliateURL string) error
	UpdatePrice(ctx context.Context, id primitive.ObjectID, oldPrice, newPrice float64, available bool) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type productRepoImpl struct {
	col *mongo.Collection
}

func NewProductRepo(db *mongo.Database) ProductRepo {
	return &productRepoImpl{
		col: db.Collection(ProductCollection),
	}
}

// GetByNameKey 按归一化名称查找全局商品，未命中返回 nil
func (s *productRepoImpl) GetByNameKey(ctx context.Context, nameKey string) (*Product, error) {
	var product Product
	err := s.col.FindOne(ctx, bson.M{"name_key": nameKey}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product by name key")
	}
	return &product, nil
}

func (s *productRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var product Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find product by id")
	}
	return &product, nil
}

// GetAll 全量扫描，巡检任务每一轮都会检查所有商品
func (s *productRepoImpl) GetAll(ctx context.Context) ([]*Product, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find all products")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var products []*Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}
	return products, nil
}

func (s *productRepoImpl) Insert(ctx context.Context, product *Product) (primitive.ObjectID, error) {
	product.UpdatedAt = time.Now()
	result, err := s.col.InsertOne(ctx, product)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert product")
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// UpdateLinks 同一商品被重新提交时，用更新的链接覆盖旧链接，价格字段不动
func (s *productRepoImpl) UpdateLinks(ctx context.Context, id primitive.ObjectID, url, affiliateURL string) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"url":           url,
			"affiliate_url": affiliateURL,
			"updated_at":    time.Now(),
		}},
	)
	return errors.Wrap(err, "update product links")
}

// UpdatePrice 条件更新：仅当当前价格仍为 oldPrice 时生效，避免与并发写互相覆盖。
// $min/$max 让历史区间的维护在文档级原子完成。
// 返回 false 表示价格已被其他写入者抢先修改，本次为 no-op。
func (s *productRepoImpl) UpdatePrice(ctx context.Context, id primitive.ObjectID, oldPrice, newPrice float64, available bool) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "price": oldPrice},
		bson.M{
			"$set": bson.M{
				"price":          newPrice,
				"previous_price": oldPrice,
				"available":      available,
				"updated_at":     time.Now(),
			},
			"$min": bson.M{"lower": newPrice},
			"$max": bson.M{"upper": newPrice},
		},
	)
	if err != nil {
		return false, errors.Wrap(err, "update product price")
	}
	return result.ModifiedCount > 0, nil
}

func (s *productRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "delete product")
}
