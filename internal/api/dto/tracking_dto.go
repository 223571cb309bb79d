package dto

import "time"

// TrackRequestDTO 追踪请求，text 中可以混有任意文字，URL 会被提取出来
type TrackRequestDTO struct {
	URL string `json:"url" validate:"required,max=2048"`
}

// TrackResultDTO 单个 URL 的追踪结果
type TrackResultDTO struct {
	TrackingID   string  `json:"tracking_id"`
	IsNew        bool    `json:"is_new"`
	ProductName  string  `json:"product_name"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
	Platform     string  `json:"platform"`
	AffiliateURL string  `json:"affiliate_url"`
	ImageURL     string  `json:"image_url,omitempty"`
}

// TrackingItemDTO 追踪列表中的一项：追踪记录与其全局商品的拼接视图
type TrackingItemDTO struct {
	TrackingID   string  `json:"tracking_id"`
	ProductName  string  `json:"product_name"`
	Price        float64 `json:"price"`
	AffiliateURL string  `json:"affiliate_url"`
	Available    bool    `json:"available"`
}

// TrackingDetailDTO 单条追踪的详情，含历史区间
type TrackingDetailDTO struct {
	TrackingID    string    `json:"tracking_id"`
	ProductName   string    `json:"product_name"`
	Price         float64   `json:"price"`
	PreviousPrice float64   `json:"previous_price"`
	Upper         float64   `json:"upper"`
	Lower         float64   `json:"lower"`
	AffiliateURL  string    `json:"affiliate_url"`
	Available     bool      `json:"available"`
	ImageURL      string    `json:"image_url,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
