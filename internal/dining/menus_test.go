package dining

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `{
	"data": {
		"eateries": [
			{
				"name": "North Star",
				"operatingHours": [
					{
						"events": [
							{
								"menu": [
									{"items": [{"item": "Grilled Chicken"}, {"item": "Rice Pilaf"}]},
									{"items": [{"item": "Grilled Chicken"}, {"item": ""}]}
								]
							},
							{
								"menu": [
									{"items": [{"item": "Black Bean Soup"}]}
								]
							}
						]
					}
				]
			},
			{
				"name": "Okenshields",
				"operatingHours": []
			}
		]
	}
}`

func TestFetchMenusFlattensFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleFeed))
	}))
	defer server.Close()

	client := NewMenuClient(server.URL)
	menus, err := client.FetchMenus(context.Background())
	require.NoError(t, err)

	// Duplicates and empty names are dropped, items come back sorted.
	assert.Equal(t, []string{"Black Bean Soup", "Grilled Chicken", "Rice Pilaf"}, menus["North Star"])
	assert.Equal(t, []string{}, menus["Okenshields"])
}

func TestFetchMenusUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewMenuClient(server.URL)
	_, err := client.FetchMenus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestFetchMenusMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewMenuClient(server.URL)
	_, err := client.FetchMenus(context.Background())
	assert.Error(t, err)
}
