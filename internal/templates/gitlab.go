package templates

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// gitlabSource reads template files through the GitLab repository files API
type gitlabSource struct {
	client      *gitlab.Client
	projectPath string
}

// newGitLabClient creates a GitLab client for the configured instance
func newGitLabClient(httpClient *http.Client, token, baseURL string) (*gitlab.Client, error) {
	return gitlab.NewClient(token, gitlab.WithBaseURL(baseURL), gitlab.WithHTTPClient(httpClient))
}

func newGitLabSource(client *gitlab.Client, projectPath string) *gitlabSource {
	return &gitlabSource{client: client, projectPath: projectPath}
}

// GetDefaultBranch returns the default branch name for the repository
func (s *gitlabSource) GetDefaultBranch(ctx context.Context) (string, error) {
	project, _, err := s.client.Projects.GetProject(s.projectPath, &gitlab.GetProjectOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch repository info for %s: %w", s.projectPath, err)
	}

	// Empty repositories have empty DefaultBranch
	if project.DefaultBranch == "" {
		return "main", nil
	}
	return project.DefaultBranch, nil
}

// FetchFileContent fetches the content of a file from the repository
func (s *gitlabSource) FetchFileContent(ctx context.Context, path, ref string) (string, error) {
	opts := &gitlab.GetFileOptions{Ref: &ref}
	file, _, err := s.client.RepositoryFiles.GetFile(s.projectPath, path, opts, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s from %s: %w", path, s.projectPath, err)
	}

	if file.Encoding == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return "", fmt.Errorf("failed to decode base64 content for %s from %s: %w", path, s.projectPath, err)
		}
		return string(decoded), nil
	}

	return file.Content, nil
}
