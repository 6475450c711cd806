package integrations

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

type GitHubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio"`
}

type GitHubClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewGitHubClient(baseURL, token string) *GitHubClient {
	return &GitHubClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  newHTTPClient(),
	}
}

func (c *GitHubClient) GetUser(ctx context.Context, username string) (*GitHubUser, error) {
	headers := map[string]string{}
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}
	var user GitHubUser
	endpoint := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))
	if err := getJSON(ctx, c.client, endpoint, headers, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

var githubUsernameRe = regexp.MustCompile(`^[a-zA-Z0-9-]+`)

// ExtractGitHubUsername normalizes a pasted profile link or bare username
// into a GitHub login. Trailing path segments and query strings are dropped.
func ExtractGitHubUsername(link string) string {
	link = strings.TrimSpace(link)
	link = strings.TrimPrefix(link, "https://")
	link = strings.TrimPrefix(link, "http://")
	link = strings.TrimPrefix(link, "www.")
	link = strings.TrimPrefix(link, "github.com/")
	link = strings.TrimPrefix(link, "@")
	return githubUsernameRe.FindString(link)
}
