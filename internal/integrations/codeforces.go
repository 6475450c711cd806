package integrations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"kairo_backend/pkg/apperrors"
)

type CodeforcesUser struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
	MaxRank   string `json:"maxRank"`
}

type codeforcesResponse struct {
	Status  string           `json:"status"`
	Comment string           `json:"comment"`
	Result  []CodeforcesUser `json:"result"`
}

type CodeforcesClient struct {
	baseURL string
	client  *http.Client
}

func NewCodeforcesClient(baseURL string) *CodeforcesClient {
	return &CodeforcesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  newHTTPClient(),
	}
}

func (c *CodeforcesClient) GetUser(ctx context.Context, handle string) (*CodeforcesUser, error) {
	var resp codeforcesResponse
	endpoint := fmt.Sprintf("%s/user.info?handles=%s", c.baseURL, url.QueryEscape(handle))
	if err := getJSON(ctx, c.client, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Result) == 0 {
		return nil, apperrors.NewNotFoundError("integration",
			fmt.Sprintf("Codeforces handle not found: %s", resp.Comment))
	}
	return &resp.Result[0], nil
}

// ExtractCodeforcesHandle pulls the handle out of a profile URL like
// https://codeforces.com/profile/tourist.
func ExtractCodeforcesHandle(link string) string {
	link = strings.TrimSpace(strings.TrimSuffix(link, "/"))
	if !strings.Contains(link, "/") {
		return link
	}
	parts := strings.Split(link, "/")
	return parts[len(parts)-1]
}
