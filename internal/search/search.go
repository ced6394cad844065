// Package search queries the MeiliSearch index of relay events.
package search

import (
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

const indexName = "events"

type Client struct {
	index *meilisearch.Index
}

func NewClient(host, apiKey string) *Client {
	c := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &Client{index: c.Index(indexName)}
}

// Notes runs a quoted-phrase search over kind-1 events and returns the
// matching event IDs, newest first, at most five.
func (c *Client) Notes(query string) ([]string, error) {
	res, err := c.index.Search(fmt.Sprintf("%q", query), &meilisearch.SearchRequest{
		Filter: "kind = 1",
		Limit:  5,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit, ok := h.(map[string]any)
		if !ok {
			continue
		}
		id, ok := hit["id"].(string)
		if !ok {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
