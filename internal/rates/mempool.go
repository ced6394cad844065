package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

const tipHeightURL = "https://mempool.space/api/blocks/tip/height"

// TipHeight returns the current bitcoin chain tip height from mempool.space.
func (c *Client) TipHeight(ctx context.Context) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tipHeightURL, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%s: status %d", tipHeightURL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64))
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(body)), 10, 64)
}
