package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TrackingRepo interface {
	GetByUserAndProduct(ctx context.Context, userID int64, productID primitive.ObjectID) (*Tracking, error)
	GetByIDAndUser(ctx context.Context, id primitive.ObjectID, userID int64) (*Tracking, error)
	GetByUser(ctx context.Context, userID int64) ([]*Tracking, error)
	GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]*Tracking, error)
	CountByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error)
	Insert(ctx context.Context, tracking *Tracking) (primitive.ObjectID, error)
	Delete(ctx context.Context, id primitive.ObjectID, userID int64) (bool, error)
}

type trackingRepoImpl struct {
	col *mongo.Collection
}

func NewTrackingRepo(db *mongo.Database) TrackingRepo {
	return &trackingRepoImpl{
		col: db.Collection(TrackingCollection),
	}
}

func (s *trackingRepoImpl) GetByUserAndProduct(ctx context.Context, userID int64, productID primitive.ObjectID) (*Tracking, error) {
	var tracking Tracking
	err := s.col.FindOne(ctx, bson.M{"user_id": userID, "product_id": productID}).Decode(&tracking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tracking by user and product")
	}
	return &tracking, nil
}

// GetByIDAndUser 带归属校验的查询，避免用户操作他人的追踪记录
func (s *trackingRepoImpl) GetByIDAndUser(ctx context.Context, id primitive.ObjectID, userID int64) (*Tracking, error) {
	var tracking Tracking
	err := s.col.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&tracking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find tracking by id")
	}
	return &tracking, nil
}

func (s *trackingRepoImpl) GetByUser(ctx context.Context, userID int64) ([]*Tracking, error) {
	return s.findAll(ctx, bson.M{"user_id": userID})
}

// GetByProduct 价格变动时的收件人解析
func (s *trackingRepoImpl) GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]*Tracking, error) {
	return s.findAll(ctx, bson.M{"product_id": productID})
}

func (s *trackingRepoImpl) findAll(ctx context.Context, filter bson.M) ([]*Tracking, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "find trackings")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var trackings []*Tracking
	if err := cursor.All(ctx, &trackings); err != nil {
		return nil, errors.Wrap(err, "decode trackings")
	}
	return trackings, nil
}

// CountByProduct 级联删除前检查是否还有人在追踪该商品
func (s *trackingRepoImpl) CountByProduct(ctx context.Context, productID primitive.ObjectID) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"product_id": productID})
	if err != nil {
		return 0, errors.Wrap(err, "count trackings by product")
	}
	return count, nil
}

func (s *trackingRepoImpl) Insert(ctx context.Context, tracking *Tracking) (primitive.ObjectID, error) {
	tracking.CreatedAt = time.Now()
	result, err := s.col.InsertOne(ctx, tracking)
	if err != nil {
		return primitive.NilObjectID, errors.Wrap(err, "insert tracking")
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

// Delete 按 (_id, user_id) 删除，返回是否确实删除了一条记录
func (s *trackingRepoImpl) Delete(ctx context.Context, id primitive.ObjectID, userID int64) (bool, error) {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return false, errors.Wrap(err, "delete tracking")
	}
	return result.DeletedCount > 0, nil
}
