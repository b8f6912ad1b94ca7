package templates

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"prompty/internal/config"
	httputil "prompty/internal/http"
)

// Loader builds the category catalog from the built-ins and configured template sources
type Loader struct {
	cfg        *config.Config
	httpClient *http.Client
	gitlabHTTP *http.Client
}

// NewLoader creates a loader using the template source settings of cfg
func NewLoader(cfg *config.Config) *Loader {
	return &Loader{
		cfg:        cfg,
		httpClient: httputil.NewHTTPClient(httputil.HTTPClientOptions{}),
		gitlabHTTP: httputil.NewHTTPClient(httputil.HTTPClientOptions{SkipSSLVerify: cfg.GitLabSkipSSLVerify}),
	}
}

// Load builds the catalog from the built-ins followed by cfg.TemplateSources
func Load(ctx context.Context, cfg *config.Config) (*Catalog, error) {
	return NewLoader(cfg).Load(ctx, cfg.TemplateSources)
}

// Load fetches every source in parallel and merges them in declaration order after the
// built-ins. Any failing source fails the whole load.
func (l *Loader) Load(ctx context.Context, specs []string) (*Catalog, error) {
	sources := make([]Source, len(specs))
	for i, spec := range specs {
		src, err := ParseSource(spec)
		if err != nil {
			return nil, err
		}
		sources[i] = src
	}

	results := make([][]Category, len(sources))

	g, gCtx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			categories, err := l.fetch(gCtx, src)
			if err != nil {
				return fmt.Errorf("failed to load template source %s: %w", src.Spec, err)
			}
			results[i] = categories
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog, err := NewCatalog(Builtin()...)
	if err != nil {
		return nil, err
	}
	for i, categories := range results {
		if err := catalog.merge(categories); err != nil {
			return nil, fmt.Errorf("invalid template source %s: %w", sources[i].Spec, err)
		}
		slog.Debug("Loaded template source", "source", sources[i].Spec, "categories", len(categories))
	}

	slog.Info("Category catalog ready", "categories", len(catalog.categories), "sources", len(sources))

	return catalog, nil
}

// fetch reads and decodes one source
func (l *Loader) fetch(ctx context.Context, src Source) ([]Category, error) {
	var content string

	switch src.Kind {
	case KindFile:
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.Path, err)
		}
		content = string(data)

	case KindGitHub, KindGitLab:
		repo, err := l.repository(ctx, src)
		if err != nil {
			return nil, err
		}
		content, err = fetchRepositoryFile(ctx, repo, src.Path, src.Ref)
		if err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("unsupported template source kind: %s", src.Kind)
	}

	return ParseTemplateFile(src.Path, content)
}

// repository picks the hosted repository client for a source
func (l *Loader) repository(ctx context.Context, src Source) (RepositoryFileSource, error) {
	if src.Kind == KindGitLab {
		client, err := newGitLabClient(l.gitlabHTTP, l.cfg.GitLabToken, l.cfg.GitLabBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create GitLab client: %w", err)
		}
		return newGitLabSource(client, src.Project), nil
	}

	baseURL := strings.TrimSuffix(l.cfg.GitHubBaseURL, "/")

	if l.cfg.GitHubAPI == "graphql" {
		var endpoint string
		if baseURL != "" {
			endpoint = baseURL + "/api/graphql"
		}
		client := newGitHubGraphQLClient(ctx, l.httpClient, l.cfg.GitHubToken, endpoint)
		return newGitHubGraphQLSource(client, src.Owner, src.Repo), nil
	}

	client := newGitHubRESTClient(l.httpClient, l.cfg.GitHubToken)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid PROMPTY_GITHUB_BASE_URL: %w", err)
		}
	}
	return newGitHubRESTSource(client, src.Owner, src.Repo), nil
}
