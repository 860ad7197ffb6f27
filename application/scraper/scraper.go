package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/jfcarod/convocations-api/constant"
	"github.com/jfcarod/convocations-api/model"
	"github.com/jfcarod/convocations-api/utils/errors"
	"github.com/jfcarod/convocations-api/utils/logger"
	"go.uber.org/zap"
)

const (
	itemSelector   = "div.item"
	requestTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

type ScraperApp interface {
	Scrape(ctx context.Context, url string) ([]model.ScrapedItem, error)
}

type ScraperAppImpl struct {
}

func NewScraperApp() ScraperApp {
	return &ScraperAppImpl{}
}

// Scrape fetches one page and lifts a title/link pair out of every
// div.item block. A fresh collector is built per call so concurrent
// requests never share scraping state.
func (s *ScraperAppImpl) Scrape(ctx context.Context, url string) ([]model.ScrapedItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.SetCustomError(constant.ErrUpstreamFetch)
	}

	c := colly.NewCollector(
		colly.UserAgent(userAgent),
	)
	c.SetRequestTimeout(requestTimeout)

	items := make([]model.ScrapedItem, 0)

	c.OnHTML(itemSelector, func(e *colly.HTMLElement) {
		title := strings.TrimSpace(e.ChildText("h2"))
		if title == "" {
			title = strings.TrimSpace(e.ChildText("a"))
		}
		link := e.ChildAttr("a", "href")
		if title == "" && link == "" {
			return
		}
		items = append(items, model.ScrapedItem{
			Title: title,
			Link:  e.Request.AbsoluteURL(link),
		})
	})

	if err := c.Visit(url); err != nil {
		logger.Error("[Scrape] err visiting url", zap.String("url", url), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrUpstreamFetch)
	}

	return items, nil
}
