package providers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"EcoBoard/internal/domain/models"
	applogger "EcoBoard/pkg/logger"
)

const maxItemsPerFeed = 8

// NewsProvider pulls headlines from the configured RSS/Atom feeds. Each
// feed is fetched independently so one broken feed never blanks the
// whole ticker; its items are tagged with the feed title as source.
type NewsProvider struct {
	feeds  []string
	parser *gofeed.Parser
	logger *applogger.Logger
}

func NewNewsProvider(feeds []string, logger *applogger.Logger) *NewsProvider {
	return &NewsProvider{
		feeds:  feeds,
		parser: gofeed.NewParser(),
		logger: logger,
	}
}

func (p *NewsProvider) Name() string { return "rss" }

func (p *NewsProvider) Configured() bool { return len(p.feeds) > 0 }

func (p *NewsProvider) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	var items []models.NewsItem
	var failed int

	for _, url := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			failed++
			p.logger.Warn("news feed failed",
				applogger.String("feed", url),
				applogger.Error(err))
			continue
		}
		items = append(items, takeRecent(feed)...)
	}

	if failed == len(p.feeds) {
		return nil, fmt.Errorf("rss: all %d feeds failed", len(p.feeds))
	}
	return items, nil
}

// takeRecent returns a feed's items newest first, capped per feed so a
// prolific outlet cannot crowd out the others.
func takeRecent(feed *gofeed.Feed) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		var pub time.Time
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}
		out = append(out, models.NewsItem{
			Title:   item.Title,
			Link:    item.Link,
			Source:  feed.Title,
			PubDate: pub,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PubDate.After(out[j].PubDate)
	})
	if len(out) > maxItemsPerFeed {
		out = out[:maxItemsPerFeed]
	}
	return out
}
