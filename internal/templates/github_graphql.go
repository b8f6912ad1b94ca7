package templates

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
)

// githubGraphQLSource reads template files through the GitHub GraphQL API
type githubGraphQLSource struct {
	client *githubv4.Client
	owner  string
	repo   string
}

// newGitHubGraphQLClient creates a GitHub GraphQL client with token authentication.
// An empty endpoint targets api.github.com.
func newGitHubGraphQLClient(ctx context.Context, base *http.Client, token, endpoint string) *githubv4.Client {
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	if base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, base)
	}
	httpClient := oauth2.NewClient(ctx, src)

	if endpoint != "" {
		return githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return githubv4.NewClient(httpClient)
}

func newGitHubGraphQLSource(client *githubv4.Client, owner, repo string) *githubGraphQLSource {
	return &githubGraphQLSource{client: client, owner: owner, repo: repo}
}

// GetDefaultBranch returns the default branch name for the repository
func (s *githubGraphQLSource) GetDefaultBranch(ctx context.Context) (string, error) {
	var q struct {
		Repository struct {
			DefaultBranchRef *struct {
				Name githubv4.String
			}
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]any{
		"owner": githubv4.String(s.owner),
		"repo":  githubv4.String(s.repo),
	}

	if err := s.client.Query(ctx, &q, variables); err != nil {
		return "", fmt.Errorf("failed to fetch repository info for %s/%s: %w", s.owner, s.repo, err)
	}

	if q.Repository.DefaultBranchRef == nil || q.Repository.DefaultBranchRef.Name == "" {
		return "main", nil
	}
	return string(q.Repository.DefaultBranchRef.Name), nil
}

// FetchFileContent fetches the content of a file from the repository
func (s *githubGraphQLSource) FetchFileContent(ctx context.Context, path, ref string) (string, error) {
	var q struct {
		Repository struct {
			Object *struct {
				Blob struct {
					IsBinary githubv4.Boolean
					Text     *githubv4.String
				} `graphql:"... on Blob"`
			} `graphql:"object(expression: $expression)"`
		} `graphql:"repository(owner: $owner, name: $repo)"`
	}

	variables := map[string]any{
		"owner":      githubv4.String(s.owner),
		"repo":       githubv4.String(s.repo),
		"expression": githubv4.String(ref + ":" + path),
	}

	if err := s.client.Query(ctx, &q, variables); err != nil {
		return "", fmt.Errorf("failed to fetch %s from %s/%s: %w", path, s.owner, s.repo, err)
	}

	object := q.Repository.Object
	if object == nil {
		return "", fmt.Errorf("%s not found in %s/%s at %s", path, s.owner, s.repo, ref)
	}
	if object.Blob.IsBinary || object.Blob.Text == nil {
		return "", fmt.Errorf("%s in %s/%s is not a text file", path, s.owner, s.repo)
	}

	return string(*object.Blob.Text), nil
}
