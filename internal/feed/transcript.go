package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claimscope/claimscope/internal/model"
)

// srv1Document is the timedtext srv1 caption format: a flat list of timed
// text nodes.
type srv1Document struct {
	XMLName xml.Name   `xml:"transcript"`
	Texts   []srv1Text `xml:"text"`
}

type srv1Text struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// Transcript fetches the caption transcript for a video. The returned text
// is the concatenation of all segments; callers decide whether it is long
// enough to be usable.
func (c *Client) Transcript(ctx context.Context, videoID string) (*model.Transcript, error) {
	captionURL := fmt.Sprintf(
		"%s?v=%s&lang=%s&fmt=srv1",
		c.captionBaseURL, url.QueryEscape(videoID), url.QueryEscape(c.captionLang),
	)

	if c.robots != nil {
		allowed, crawlDelay, err := c.robots.canFetch(ctx, captionURL)
		if err == nil && !allowed {
			return nil, fmt.Errorf("robots.txt disallows caption fetch for %s", videoID)
		}
		if crawlDelay > 0 {
			timer := time.NewTimer(crawlDelay)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript %s: %w", videoID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcript fetch %s: status %d", videoID, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read transcript %s: %w", videoID, err)
	}

	return parseSrv1(body)
}

// parseSrv1 decodes caption XML into a transcript. Caption bodies are often
// double-escaped upstream, so entities are unescaped once more after the
// XML decode.
func parseSrv1(data []byte) (*model.Transcript, error) {
	var doc srv1Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse caption xml: %w", err)
	}

	transcript := &model.Transcript{}
	var parts []string

	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		text = strings.ReplaceAll(text, "\n", " ")
		if text == "" {
			continue
		}
		transcript.Segments = append(transcript.Segments, model.TranscriptSegment{
			Text:     text,
			Offset:   t.Start,
			Duration: t.Dur,
		})
		parts = append(parts, text)
	}

	transcript.Text = strings.Join(parts, " ")
	return transcript, nil
}
