package templates

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v80/github"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

const remoteCSV = "category,prompt\nPets,Best dog food for puppies?\n"

func newGitHubTestServer(t *testing.T, prefix string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case prefix + "/repos/acme/prompts":
			w.Write([]byte(`{"name": "prompts", "default_branch": "trunk"}`))
		case prefix + "/repos/acme/prompts/contents/catalog/prompts.csv":
			assert.Equal(t, "trunk", r.URL.Query().Get("ref"))
			json.NewEncoder(w).Encode(map[string]string{
				"type":     "file",
				"encoding": "base64",
				"content":  base64.StdEncoding.EncodeToString([]byte(remoteCSV)),
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "Not Found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGitHubRESTSource(t *testing.T) {
	server := newGitHubTestServer(t, "")

	client := newGitHubRESTClient(server.Client(), "token")
	client.BaseURL, _ = url.Parse(server.URL + "/")

	source := newGitHubRESTSource(client, "acme", "prompts")

	content, err := fetchRepositoryFile(context.Background(), source, "catalog/prompts.csv", "")
	require.NoError(t, err)
	assert.Equal(t, remoteCSV, content)

	_, err = source.FetchFileContent(context.Background(), "missing.csv", "trunk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch missing.csv from acme/prompts")
}

func TestGitHubRESTSource_EmptyDefaultBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "prompts"}`))
	}))
	defer server.Close()

	client := github.NewClient(server.Client())
	client.BaseURL, _ = url.Parse(server.URL + "/")

	branch, err := newGitHubRESTSource(client, "acme", "prompts").GetDefaultBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func newGraphQLTestServer(t *testing.T, path string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		assert.Equal(t, "Bearer gh-token", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		require.NoError(t, json.Unmarshal(body, &req))

		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.Contains(req.Query, "defaultBranchRef"):
			w.Write([]byte(`{"data": {"repository": {"defaultBranchRef": {"name": "trunk"}}}}`))
		case req.Variables["expression"] == "trunk:catalog/prompts.csv":
			json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"repository": map[string]any{
						"object": map[string]any{"isBinary": false, "text": remoteCSV},
					},
				},
			})
		default:
			w.Write([]byte(`{"data": {"repository": {"object": null}}}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGitHubGraphQLSource(t *testing.T) {
	server := newGraphQLTestServer(t, "/graphql")

	client := newGitHubGraphQLClient(context.Background(), server.Client(), "gh-token", server.URL+"/graphql")
	source := newGitHubGraphQLSource(client, "acme", "prompts")

	content, err := fetchRepositoryFile(context.Background(), source, "catalog/prompts.csv", "")
	require.NoError(t, err)
	assert.Equal(t, remoteCSV, content)

	_, err = source.FetchFileContent(context.Background(), "missing.csv", "trunk")
	assert.EqualError(t, err, "missing.csv not found in acme/prompts at trunk")
}

func TestGitHubGraphQLSource_BinaryFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"repository": {"object": {"isBinary": true, "text": null}}}}`))
	}))
	defer server.Close()

	client := githubv4.NewEnterpriseClient(server.URL, server.Client())
	_, err := newGitHubGraphQLSource(client, "acme", "prompts").FetchFileContent(context.Background(), "logo.png", "main")
	assert.EqualError(t, err, "logo.png in acme/prompts is not a text file")
}

func newGitLabTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/repository/files/data/prompts.csv"):
			assert.Equal(t, "release", r.URL.Query().Get("ref"))
			json.NewEncoder(w).Encode(map[string]string{
				"file_name": "prompts.csv",
				"file_path": "data/prompts.csv",
				"encoding":  "base64",
				"content":   base64.StdEncoding.EncodeToString([]byte(remoteCSV)),
			})
		case r.URL.Path == "/api/v4/projects/marketing/geo":
			w.Write([]byte(`{"id": 7, "default_branch": "release"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "404 Not Found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGitLabSource(t *testing.T) {
	server := newGitLabTestServer(t)

	client, err := newGitLabClient(server.Client(), "glpat", server.URL)
	require.NoError(t, err)

	source := newGitLabSource(client, "marketing/geo")

	content, err := fetchRepositoryFile(context.Background(), source, "data/prompts.csv", "")
	require.NoError(t, err)
	assert.Equal(t, remoteCSV, content)

	_, err = source.FetchFileContent(context.Background(), "missing.csv", "release")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch missing.csv from marketing/geo")
}

func TestGitLabSource_PlainContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"file_name": "prompts.csv", "encoding": "text", "content": "plain"}`))
	}))
	defer server.Close()

	client, err := gitlab.NewClient("", gitlab.WithBaseURL(server.URL), gitlab.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	content, err := newGitLabSource(client, "team/prompts").FetchFileContent(context.Background(), "prompts.csv", "main")
	require.NoError(t, err)
	assert.Equal(t, "plain", content)
}
