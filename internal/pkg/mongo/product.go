package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ProductCollection  = "products"
	TrackingCollection = "trackings"
	UserCollection     = "users"
)

// Product 全局商品记录，同一件商品在全库只有一条
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName   string             `bson:"product_name" json:"product_name"`
	NameKey       string             `bson:"name_key" json:"-"` // 归一化去重键（小写、压缩空白）
	URL           string             `bson:"url" json:"url"`
	AffiliateURL  string             `bson:"affiliate_url" json:"affiliate_url"`
	Price         float64            `bson:"price" json:"price"`
	PreviousPrice float64            `bson:"previous_price" json:"previous_price"`
	Upper         float64            `bson:"upper" json:"upper"` // 历史最高价
	Lower         float64            `bson:"lower" json:"lower"` // 历史最低价
	Available     bool               `bson:"available" json:"available"`
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Tracking 用户与全局商品之间的追踪关系，_id 即对外暴露的 tracking id
type Tracking struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"tracking_id"`
	UserID    int64              `bson:"user_id" json:"user_id"`
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// User 使用过本服务的用户，用于广播
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	UserID   int64              `bson:"user_id" json:"user_id"`
	Username string             `bson:"username,omitempty" json:"username,omitempty"`
	JoinedAt time.Time          `bson:"joined_at" json:"joined_at"`
}
