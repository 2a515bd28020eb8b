package assetorigin

import (
	"context"
	"fmt"
	"io"
	"mealremind/internal/core/domain/asset"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const MAX_BODY_SIZE = 10 << 20

// HTTP fetches assets from the web server hosting the meal-planner page.
type HTTP struct {
	httpClient http.Client
	baseURL    url.URL
}

func New(baseURL url.URL, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL:    baseURL,
		httpClient: http.Client{Timeout: timeout},
	}
}

func (o *HTTP) Fetch(ctx context.Context, path string) (asset.Response, error) {
	target := &o.baseURL
	if trimmed := strings.TrimPrefix(path, "/"); trimmed != "" {
		target = o.baseURL.JoinPath(trimmed)
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return asset.Response{}, err
	}
	resp, err := o.httpClient.Do(request)
	if err != nil {
		return asset.Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MAX_BODY_SIZE+1))
	if err != nil {
		return asset.Response{}, err
	}
	if len(body) > MAX_BODY_SIZE {
		return asset.Response{}, fmt.Errorf("asset %s is larger than %d bytes", path, MAX_BODY_SIZE)
	}
	return asset.Response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("content-type"),
		Body:        body,
	}, nil
}
