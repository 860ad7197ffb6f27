package model

// ScrapeRequest names the page to fetch
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// ScrapedItem is one title/link pair lifted from a div.item block
type ScrapedItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
