package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"₹1,299", 1299, false},
		{"₹1,29,900.50", 129900.50, false},
		{"  $45.99 ", 45.99, false},
		{"799", 799, false},
		{"", 0, true},
		{"out of stock", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePrice(tt.text)
		if tt.wantErr {
			assert.Error(t, err, tt.text)
			continue
		}
		require.NoError(t, err, tt.text)
		assert.Equal(t, tt.want, got, tt.text)
	}
}

func TestParseAmazon(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<span id="productTitle"> Widget Pro Max </span>
			<div id="availability"><span> In Stock </span></div>
			<img id="landingImage" src="https://img.example/widget.jpg">
			<span class="a-price"><span class="a-offscreen">₹1,299.00</span></span>
		</body></html>`)

	result, err := parseAmazon(doc)
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro Max", result.ProductName)
	assert.Equal(t, 1299.0, result.Price)
	assert.True(t, result.Available)
	assert.Equal(t, "https://img.example/widget.jpg", result.ImageURL)
}

func TestParseAmazonUnavailable(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<span id="productTitle">Widget</span>
			<div id="availability"><span>Currently unavailable.</span></div>
		</body></html>`)

	result, err := parseAmazon(doc)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0.0, result.Price)
}

func TestParseAmazonMissingTitle(t *testing.T) {
	_, err := parseAmazon(docFromHTML(t, `<html><body></body></html>`))
	assert.ErrorIs(t, err, ErrScrape)
}

func TestParseFlipkart(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<h1><span>Gadget 5G (Blue, 128 GB)</span></h1>
			<img class="_396cs4" src="https://img.example/gadget.jpg">
			<div class="_30jeq3">₹15,499</div>
		</body></html>`)

	result, err := parseFlipkart(doc)
	require.NoError(t, err)
	assert.Equal(t, "Gadget 5G (Blue, 128 GB)", result.ProductName)
	assert.Equal(t, 15499.0, result.Price)
	assert.True(t, result.Available)
	assert.Equal(t, "https://img.example/gadget.jpg", result.ImageURL)
}

func TestParseFlipkartNewLayout(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<span class="B_NuCI">Gadget Lite</span>
			<div class="Nx9bqj">₹9,999</div>
		</body></html>`)

	result, err := parseFlipkart(doc)
	require.NoError(t, err)
	assert.Equal(t, "Gadget Lite", result.ProductName)
	assert.Equal(t, 9999.0, result.Price)
}

func TestParseFlipkartSoldOut(t *testing.T) {
	doc := docFromHTML(t, `
		<html><body>
			<h1><span>Gadget</span></h1>
			<div class="_16FRp0">Sold Out</div>
		</body></html>`)

	result, err := parseFlipkart(doc)
	require.NoError(t, err)
	assert.False(t, result.Available)
	assert.Equal(t, 0.0, result.Price)
}
