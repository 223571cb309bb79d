package consts

const (
	PlatformAmazon   = "amazon"
	PlatformFlipkart = "flipkart"
)
