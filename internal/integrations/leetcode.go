package integrations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type LeetCodeStats struct {
	Status       string `json:"status"`
	TotalSolved  int    `json:"totalSolved"`
	EasySolved   int    `json:"easySolved"`
	MediumSolved int    `json:"mediumSolved"`
	HardSolved   int    `json:"hardSolved"`
	Ranking      int    `json:"ranking"`
}

type LeetCodeClient struct {
	baseURL string
	client  *http.Client
}

func NewLeetCodeClient(baseURL string) *LeetCodeClient {
	return &LeetCodeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

func (c *LeetCodeClient) GetStats(ctx context.Context, username string) (*LeetCodeStats, error) {
	var stats LeetCodeStats
	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(username))
	if err := getJSON(ctx, c.client, endpoint, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ExtractLeetCodeUsername pulls the username out of a profile URL like
// https://leetcode.com/u/johndoe/. A bare username passes through as is.
func ExtractLeetCodeUsername(link string) string {
	link = strings.TrimSpace(strings.TrimSuffix(link, "/"))
	if !strings.Contains(link, "/") {
		return link
	}
	parts := strings.Split(link, "/")
	return parts[len(parts)-1]
}
