// Package dining fetches campus dining hall menus and asks a language model
// for meal recommendations matched to a training goal.
package dining

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

const feedTimeout = 15 * time.Second

// Menus maps an eatery name to its sorted, de-duplicated menu item names.
type Menus map[string][]string

// MenuClient fetches the eatery JSON feed and flattens it into Menus.
type MenuClient struct {
	feedURL    string
	httpClient *http.Client
}

// NewMenuClient creates a client for the given feed URL.
func NewMenuClient(feedURL string) *MenuClient {
	return &MenuClient{
		feedURL:    feedURL,
		httpClient: &http.Client{Timeout: feedTimeout},
	}
}

// eateryFeed mirrors the shape of the dining feed we consume: each eatery's
// operating days hold events, events hold menu categories, categories hold
// items.
type eateryFeed struct {
	Data struct {
		Eateries []struct {
			Name           string `json:"name"`
			OperatingHours []struct {
				Events []struct {
					Menu []struct {
						Items []struct {
							Item string `json:"item"`
						} `json:"items"`
					} `json:"menu"`
				} `json:"events"`
			} `json:"operatingHours"`
		} `json:"eateries"`
	} `json:"data"`
}

// FetchMenus downloads the feed and collapses it to eatery -> item names.
func (c *MenuClient) FetchMenus(ctx context.Context) (Menus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching dining feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dining feed returned status %d", resp.StatusCode)
	}

	var feed eateryFeed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding dining feed: %w", err)
	}

	menus := Menus{}
	for _, eatery := range feed.Data.Eateries {
		seen := map[string]struct{}{}
		items := []string{}
		for _, day := range eatery.OperatingHours {
			for _, event := range day.Events {
				for _, category := range event.Menu {
					for _, entry := range category.Items {
						if entry.Item == "" {
							continue
						}
						if _, dup := seen[entry.Item]; dup {
							continue
						}
						seen[entry.Item] = struct{}{}
						items = append(items, entry.Item)
					}
				}
			}
		}
		sort.Strings(items)
		menus[eatery.Name] = items
	}
	return menus, nil
}
