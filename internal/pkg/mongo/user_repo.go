package mongo

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	Upsert(ctx context.Context, userID int64, username string) (bool, error)
	GetAll(ctx context.Context) ([]*User, error)
}

type userRepoImpl struct {
	col *mongo.Collection
}

func NewUserRepo(db *mongo.Database) UserRepo {
	return &userRepoImpl{
		col: db.Collection(UserCollection),
	}
}

// Upsert 首次出现时写入用户，返回是否为新用户
func (s *userRepoImpl) Upsert(ctx context.Context, userID int64, username string) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set":         bson.M{"username": username},
			"$setOnInsert": bson.M{"joined_at": time.Now()},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, errors.Wrap(err, "upsert user")
	}
	return result.UpsertedCount > 0, nil
}

// GetAll 广播用的全量用户列表
func (s *userRepoImpl) GetAll(ctx context.Context) ([]*User, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "find all users")
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}
