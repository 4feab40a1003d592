package main

import (
	site "github.com/devinschumacher/devinschumacher.com"
)

// defaultCatalog lists the products currently sold through the site. Price
// and product ids live in the payment provider dashboard.
func defaultCatalog() []site.CatalogEntry {
	return []site.CatalogEntry{
		{
			ProductID:       "skool-video-downloader",
			Name:            "Skool Video Downloader",
			StripeProductID: "prod_SvRh9BS7Bwi0tk",
			StripePriceID:   "price_1Rzao2DP7AOTRcvmjrDKR9tF",
			CRMTag:          "purchase-skool-video-downloader-stripe",
		},
	}
}
