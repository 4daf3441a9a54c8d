package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

const (
	// DefaultBaseURL is the static wiki API behind wiki.hoyolab.com.
	DefaultBaseURL   = "https://sg-wiki-api-static.hoyolab.com/hoyowiki"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	DefaultLanguage  = "en-US"
)

// Ensure HoYoLABAdapter implements model.PageFetcher.
var _ model.PageFetcher = (*HoYoLABAdapter)(nil)

// HoYoLABAdapter fetches entry pages from the HoYoLAB wiki API.
type HoYoLABAdapter struct {
	baseURL   string
	language  string
	userAgent string
	client    *http.Client
}

// NewHoYoLABAdapter creates an adapter. Empty baseURL, language or userAgent
// fall back to the defaults.
func NewHoYoLABAdapter(baseURL, language, userAgent string, client *http.Client) *HoYoLABAdapter {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HoYoLABAdapter{
		baseURL:   baseURL,
		language:  language,
		userAgent: userAgent,
		client:    client,
	}
}

// PageURL returns the entry_page endpoint for one page.
func (a *HoYoLABAdapter) PageURL(family model.GameFamily, pageID int) string {
	q := url.Values{}
	q.Set("entry_page_id", strconv.Itoa(pageID))
	return fmt.Sprintf("%s/%s/wapi/entry_page?%s", a.baseURL, family, q.Encode())
}

// FetchPage retrieves the API envelope for one entry page. A non-200 status
// becomes *model.HTTPError and a non-zero retcode becomes *model.APIError.
func (a *HoYoLABAdapter) FetchPage(ctx context.Context, family model.GameFamily, pageID int) (*model.Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.PageURL(family, pageID), nil)
	if err != nil {
		return nil, fmt.Errorf("hoyolab fetch for %s/%d: %w", family, pageID, err)
	}
	req.Header.Set("User-Agent", a.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", a.language+",en;q=0.6")
	req.Header.Set("X-Rpc-Language", a.language)
	req.Header.Set("X-Rpc-Wiki_app", string(family))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hoyolab fetch for %s/%d: %w", family, pageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
			Err:        fmt.Errorf("hoyolab fetch for %s/%d: unexpected status %d", family, pageID, resp.StatusCode),
		}
	}

	var env model.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("hoyolab fetch for %s/%d: decoding envelope: %v: %w", family, pageID, err, model.ErrMalformedInput)
	}
	if env.Retcode != 0 {
		return nil, fmt.Errorf("hoyolab fetch for %s/%d: %w", family, pageID,
			&model.APIError{Retcode: env.Retcode, Message: env.Message})
	}

	return &env, nil
}
