package dto

type UploadResponse struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type CodingStatsDTO struct {
	LeetCode   *LeetCodeStats   `json:"leetcode,omitempty"`
	Codeforces *CodeforcesStats `json:"codeforces,omitempty"`
	GitHub     *GitHubStats     `json:"github,omitempty"`
}

type LeetCodeStats struct {
	Username     string `json:"username"`
	TotalSolved  int    `json:"total_solved"`
	EasySolved   int    `json:"easy_solved"`
	MediumSolved int    `json:"medium_solved"`
	HardSolved   int    `json:"hard_solved"`
	Ranking      int    `json:"ranking"`
}

type CodeforcesStats struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"max_rating"`
	Rank      string `json:"rank"`
}

type GitHubStats struct {
	Username    string `json:"username"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}
