// Package feed lists a channel's recent videos and fetches their caption
// transcripts.
package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/claimscope/claimscope/internal/model"
	"github.com/mmcdole/gofeed"
)

// Client is the feed/transcript provider backed by the channel RSS feed and
// the timedtext caption endpoint.
type Client struct {
	feedBaseURL    string
	captionBaseURL string
	captionLang    string
	userAgent      string
	maxBodyBytes   int64
	httpClient     *http.Client
	parser         *gofeed.Parser
	robots         *robotsChecker // nil when robots checking is disabled
}

// NewClient creates a feed client from configuration.
func NewClient(config model.FeedConfig, httpConfig model.HTTPConfig) *Client {
	httpClient := &http.Client{
		Timeout: httpConfig.Timeout,
	}

	parser := gofeed.NewParser()
	parser.UserAgent = httpConfig.UserAgent

	var robots *robotsChecker
	if config.RespectRobots {
		robots = newRobotsChecker(httpConfig.UserAgent, httpConfig.Timeout)
	}

	maxBody := config.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 2_000_000
	}

	return &Client{
		feedBaseURL:    strings.TrimSuffix(config.FeedBaseURL, "/"),
		captionBaseURL: strings.TrimSuffix(config.CaptionBaseURL, "/"),
		captionLang:    config.CaptionLang,
		userAgent:      httpConfig.UserAgent,
		maxBodyBytes:   maxBody,
		httpClient:     httpClient,
		parser:         parser,
		robots:         robots,
	}
}

// RecentVideoIDs returns up to limit video ids for a channel, most recent
// first.
func (c *Client) RecentVideoIDs(ctx context.Context, channelID string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}

	feedURL := fmt.Sprintf("%s?channel_id=%s", c.feedBaseURL, url.QueryEscape(channelID))

	parsed, err := c.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch channel feed %s: %w", channelID, err)
	}

	var ids []string
	for _, item := range parsed.Items {
		id := videoIDFromItem(item)
		if id == "" {
			continue
		}
		ids = append(ids, id)
		if len(ids) >= limit {
			break
		}
	}

	return ids, nil
}

// videoIDFromItem pulls the video id from the yt namespace extension, with
// the guid ("yt:video:<id>") as fallback.
func videoIDFromItem(item *gofeed.Item) string {
	if ytExt, ok := item.Extensions["yt"]; ok {
		if vals, ok := ytExt["videoId"]; ok && len(vals) > 0 && vals[0].Value != "" {
			return vals[0].Value
		}
	}
	if id, ok := strings.CutPrefix(item.GUID, "yt:video:"); ok {
		return id
	}
	return ""
}
