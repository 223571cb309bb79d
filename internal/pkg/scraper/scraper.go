package scraper

import (
	"PriceTracker/internal/api/config"
	"PriceTracker/internal/pkg/consts"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrScrape 网络或解析失败（重试耗尽后），调用方按条目跳过
var ErrScrape = errors.New("商品抓取失败")

// Result 一次抓取得到的商品快照
type Result struct {
	ProductName string
	Price       float64
	Available   bool
	ImageURL    string
}

type Scraper interface {
	Scrape(ctx context.Context, url, platform string) (*Result, error)
}

type scraperImpl struct {
	client *resty.Client
}

func NewScraper(cfg config.ScraperConfig) Scraper {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept-Language", "en-IN,en;q=0.9").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(10 * time.Second)

	return &scraperImpl{client: client}
}

// Scrape 抓取指定平台的商品页，下架商品价格记为 0
func (s *scraperImpl) Scrape(ctx context.Context, url, platform string) (*Result, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, errors.Wrapf(ErrScrape, "fetch %s: %v", url, err)
	}
	if resp.StatusCode() >= 400 {
		return nil, errors.Wrapf(ErrScrape, "fetch %s: status %d", url, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, errors.Wrapf(ErrScrape, "parse %s: %v", url, err)
	}

	switch platform {
	case consts.PlatformAmazon:
		return parseAmazon(doc)
	case consts.PlatformFlipkart:
		return parseFlipkart(doc)
	default:
		return nil, errors.Wrapf(ErrScrape, "unsupported platform %q", platform)
	}
}

func parseAmazon(doc *goquery.Document) (*Result, error) {
	name := strings.TrimSpace(doc.Find("#productTitle").First().Text())
	if name == "" {
		return nil, errors.Wrap(ErrScrape, "amazon: product title not found")
	}

	availability := strings.TrimSpace(doc.Find("#availability span").First().Text())
	available := availability == "" || !strings.Contains(strings.ToLower(availability), "unavailable")

	result := &Result{
		ProductName: name,
		Available:   available,
	}

	if img, ok := doc.Find("#landingImage").Attr("src"); ok {
		result.ImageURL = img
	}

	if !available {
		return result, nil
	}

	priceText := doc.Find(".a-price .a-offscreen").First().Text()
	if priceText == "" {
		priceText = doc.Find("#priceblock_ourprice").First().Text()
	}
	price, err := parsePrice(priceText)
	if err != nil {
		return nil, errors.Wrapf(ErrScrape, "amazon: %v", err)
	}
	result.Price = price

	return result, nil
}

func parseFlipkart(doc *goquery.Document) (*Result, error) {
	name := strings.TrimSpace(doc.Find("h1 span").First().Text())
	if name == "" {
		name = strings.TrimSpace(doc.Find("span.B_NuCI").First().Text())
	}
	if name == "" {
		return nil, errors.Wrap(ErrScrape, "flipkart: product title not found")
	}

	soldOut := doc.Find("div._16FRp0").Length() > 0

	result := &Result{
		ProductName: name,
		Available:   !soldOut,
	}

	if img, ok := doc.Find("img._396cs4").First().Attr("src"); ok {
		result.ImageURL = img
	}

	if soldOut {
		return result, nil
	}

	priceText := doc.Find("div._30jeq3").First().Text()
	if priceText == "" {
		priceText = doc.Find("div.Nx9bqj").First().Text()
	}
	price, err := parsePrice(priceText)
	if err != nil {
		return nil, errors.Wrapf(ErrScrape, "flipkart: %v", err)
	}
	result.Price = price

	return result, nil
}

// parsePrice 去掉货币符号与千分位后解析数值
func parsePrice(text string) (float64, error) {
	cleaned := strings.NewReplacer("₹", "", "$", "", ",", "", " ", "", " ", "").Replace(strings.TrimSpace(text))
	if cleaned == "" {
		return 0, fmt.Errorf("price not found")
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q", text)
	}
	return price, nil
}
