package templates

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v80/github"
)

// githubRESTSource reads template files through the GitHub contents API
type githubRESTSource struct {
	client *github.Client
	owner  string
	repo   string
}

// newGitHubRESTClient creates a GitHub REST client, authenticated when a token is set
func newGitHubRESTClient(httpClient *http.Client, token string) *github.Client {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client
}

func newGitHubRESTSource(client *github.Client, owner, repo string) *githubRESTSource {
	return &githubRESTSource{client: client, owner: owner, repo: repo}
}

// GetDefaultBranch returns the default branch name for the repository
func (s *githubRESTSource) GetDefaultBranch(ctx context.Context) (string, error) {
	repository, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo)
	if err != nil {
		return "", fmt.Errorf("failed to fetch repository info for %s/%s: %w", s.owner, s.repo, err)
	}

	// Empty repositories have no default branch
	if repository.GetDefaultBranch() == "" {
		return "main", nil
	}
	return repository.GetDefaultBranch(), nil
}

// FetchFileContent fetches the content of a file from the repository
func (s *githubRESTSource) FetchFileContent(ctx context.Context, path, ref string) (string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	fileContent, _, _, err := s.client.Repositories.GetContents(ctx, s.owner, s.repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s from %s/%s: %w", path, s.owner, s.repo, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("%s in %s/%s is a directory, not a template file", path, s.owner, s.repo)
	}

	// go-github handles base64 decoding
	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode content for %s from %s/%s: %w", path, s.owner, s.repo, err)
	}

	return content, nil
}
