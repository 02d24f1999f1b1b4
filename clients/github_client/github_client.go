package github_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/RomanSlack/Orchestrator-Arena/clients"
)

const BaseURL = "https://api.github.com"

// repoURLPattern accepts github.com repository URLs with an optional
// trailing slash or .git suffix.
var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// GithubClient verifies competition repositories against the GitHub API.
// Verification is advisory: its results annotate submissions but never
// block them.
type GithubClient struct {
	*clients.BaseClient
}

// NewGithubClient creates a client. token may be empty for unauthenticated
// requests, which GitHub rate-limits more aggressively.
func NewGithubClient(token string) *GithubClient {
	client := &GithubClient{
		BaseClient: clients.NewBaseClient(BaseURL),
	}

	client.SetHeader("Accept", "application/vnd.github+json")
	if token != "" {
		client.SetHeader("Authorization", "Bearer "+token)
	}

	return client
}

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// RepoInfo is the subset of GitHub's repository payload the arena cares
// about.
type RepoInfo struct {
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	CreatedAt     time.Time `json:"created_at"`
	PushedAt      time.Time `json:"pushed_at"`
	DefaultBranch string    `json:"default_branch"`
}

// CommitInfo summarizes a repository's commit activity.
type CommitInfo struct {
	Count        int       `json:"count"`
	LastCommitAt time.Time `json:"last_commit_at"`
}

// ValidationResult reports whether a repository URL points at a reachable
// public repository, and what we learned about it.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Reason string      `json:"reason,omitempty"`
	Repo   *RepoInfo   `json:"repo,omitempty"`
	Commit *CommitInfo `json:"commit,omitempty"`
}

// ParseRepoURL extracts owner and repository name from a github.com URL.
func ParseRepoURL(repoURL string) (RepoRef, error) {
	m := repoURLPattern.FindStringSubmatch(strings.TrimSpace(repoURL))
	if m == nil {
		return RepoRef{}, fmt.Errorf("not a github repository URL: %s", repoURL)
	}
	return RepoRef{Owner: m[1], Name: m[2]}, nil
}

// VerifyRepository fetches repository metadata. GitHub answers 404 both for
// missing and for private repositories the token cannot see; either way the
// repository is unusable for a public competition.
func (c *GithubClient) VerifyRepository(ctx context.Context, ref RepoRef) (*RepoInfo, error) {
	resp, err := c.Get(ctx, fmt.Sprintf("/repos/%s/%s", ref.Owner, ref.Name))
	if err != nil {
		return nil, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("repository %s/%s not found or private", ref.Owner, ref.Name)
	case http.StatusForbidden:
		return nil, fmt.Errorf("github API rate limited or forbidden")
	default:
		return nil, fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var info RepoInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("failed to decode repository: %w", err)
	}
	return &info, nil
}

// GetCommitInfo returns the repository's commit count and latest commit
// time. Requesting one commit per page makes the Link header's last page
// number equal the total commit count.
func (c *GithubClient) GetCommitInfo(ctx context.Context, ref RepoRef) (*CommitInfo, error) {
	resp, err := c.Get(ctx, fmt.Sprintf("/repos/%s/%s/commits?per_page=1", ref.Owner, ref.Name))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API returned status %d", resp.StatusCode)
	}

	var commits []struct {
		Commit struct {
			Committer struct {
				Date time.Time `json:"date"`
			} `json:"committer"`
		} `json:"commit"`
	}
	if err := json.Unmarshal(resp.Body, &commits); err != nil {
		return nil, fmt.Errorf("failed to decode commits: %w", err)
	}
	if len(commits) == 0 {
		return &CommitInfo{}, nil
	}

	info := &CommitInfo{
		Count:        1,
		LastCommitAt: commits[0].Commit.Committer.Date,
	}
	if last := lastPage(resp.Header.Get("Link")); last > 0 {
		info.Count = last
	}
	return info, nil
}

// ValidateRepositoryURL runs the whole advisory check: parse, verify, and
// summarize commit activity. A failure produces an invalid result with a
// reason rather than an error, since verification never blocks submission.
func (c *GithubClient) ValidateRepositoryURL(ctx context.Context, repoURL string) *ValidationResult {
	ref, err := ParseRepoURL(repoURL)
	if err != nil {
		return &ValidationResult{Valid: false, Reason: err.Error()}
	}

	repo, err := c.VerifyRepository(ctx, ref)
	if err != nil {
		return &ValidationResult{Valid: false, Reason: err.Error()}
	}
	if repo.Private {
		return &ValidationResult{Valid: false, Reason: "repository is private", Repo: repo}
	}

	result := &ValidationResult{Valid: true, Repo: repo}
	if commit, err := c.GetCommitInfo(ctx, ref); err == nil {
		result.Commit = commit
	}
	return result
}

var lastPagePattern = regexp.MustCompile(`[?&]page=(\d+)[^>]*>; rel="last"`)

// lastPage extracts the page number from the rel="last" entry of a GitHub
// Link header, or 0 when absent.
func lastPage(link string) int {
	m := lastPagePattern.FindStringSubmatch(link)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
