package affiliate

import (
	"PriceTracker/internal/api/config"
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrConversion 转换 API 失败（重试耗尽后），调用方必须中止本次追踪创建
var ErrConversion = errors.New("联盟链接转换失败")

type Converter interface {
	Convert(ctx context.Context, url string) (string, error)
}

type converterImpl struct {
	client *resty.Client
	apiURL string
}

type convertRequest struct {
	Deal          string `json:"deal"`
	ConvertOption string `json:"convert_option"`
}

type convertResponse struct {
	Success int    `json:"success"`
	Data    string `json:"data"`
	Message string `json:"message"`
}

func NewConverter(cfg config.AffiliateConfig) Converter {
	client := resty.New().
		SetTimeout(15*time.Second).
		SetAuthToken(cfg.Token).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)

	return &converterImpl{client: client, apiURL: cfg.URL}
}

// Convert 将原始链接换成联盟链接
func (s *converterImpl) Convert(ctx context.Context, url string) (string, error) {
	var result convertResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(convertRequest{Deal: url, ConvertOption: "convert_only"}).
		SetResult(&result).
		Post(s.apiURL)
	if err != nil {
		return "", errors.Wrapf(ErrConversion, "convert %s: %v", url, err)
	}

	if resp.StatusCode() != 200 || result.Success != 1 || result.Data == "" {
		return "", errors.Wrapf(ErrConversion, "convert %s: %s", url, result.Message)
	}

	return result.Data, nil
}
