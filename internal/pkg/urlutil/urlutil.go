package urlutil

import (
	"PriceTracker/internal/pkg/consts"
	"context"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

var amazonPatterns = compileAll(
	`^https?://(www\.)?amazon\.(com|in)/`,
	`^https?://amzn\.(in|to)/`,
)

var flipkartPatterns = compileAll(
	`^https?://(www\.|m\.|dl\.)?flipkart\.(com|in)/`,
	`^https?://(fkrt\.(cc|co|it)|fktr\.it)/`,
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// ExtractURLs 从任意文本中提取所有 URL
func ExtractURLs(text string) []string {
	return urlPattern.FindAllString(text, -1)
}

// ClassifyPlatform 按 URL 判断所属平台，空串表示不支持
func ClassifyPlatform(url string) string {
	for _, p := range amazonPatterns {
		if p.MatchString(url) {
			return consts.PlatformAmazon
		}
	}
	for _, p := range flipkartPatterns {
		if p.MatchString(url) {
			return consts.PlatformFlipkart
		}
	}
	return ""
}

var expandClient = resty.New().
	SetTimeout(10 * time.Second).
	SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

// ExpandShortURL 对短链发 HEAD 请求并跟随跳转，失败时原样返回
func ExpandShortURL(ctx context.Context, shortURL string) string {
	resp, err := expandClient.R().SetContext(ctx).Head(shortURL)
	if err != nil || resp.RawResponse == nil || resp.RawResponse.Request == nil {
		return shortURL
	}
	return resp.RawResponse.Request.URL.String()
}
