package crawler

import (
	"context"
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

const (
	maxHTMLBodyBytes = 8 << 20 // 8 MiB
	maxSnippetBytes  = 1024
)

// fetchPage downloads url and returns its body, rejecting non-2xx responses.
func (s *Service) fetchPage(ctx context.Context, url string) ([]byte, error) {
	resp, err := s.client.Get(ctx, url, s.cfg.Headers)
	if err != nil {
		return nil, &domain.FetchError{URL: url, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > maxSnippetBytes {
			snippet = snippet[:maxSnippetBytes]
		}
		return nil, &domain.FetchError{URL: url, StatusCode: code, Snippet: snippet}
	}

	if final := resp.FinalURL(); final != "" && final != url {
		s.log.DebugObj("article page redirected", "crawler_redirect", map[string]any{
			"url":       url,
			"final_url": final,
		})
	}

	body := resp.Body()
	if limit := s.bodyLimit; limit > 0 && len(body) > limit {
		s.log.WarnObj("article page truncated", "crawler_truncated", map[string]any{
			"url":        url,
			"size_bytes": len(body),
			"limit":      limit,
		})
		body = body[:limit]
	}
	return body, nil
}
