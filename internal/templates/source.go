package templates

import (
	"context"
	"fmt"
	"strings"
)

// Source kinds accepted in PROMPTY_TEMPLATE_SOURCES
const (
	KindFile   = "file"
	KindGitHub = "github"
	KindGitLab = "gitlab"
)

// Source is one parsed template source specification
type Source struct {
	Kind    string
	Owner   string // GitHub owner
	Repo    string // GitHub repository
	Project string // GitLab project path
	Path    string // file path, relative to the repository root for remote sources
	Ref     string // branch, tag or commit; empty means the default branch
	Spec    string
}

// RepositoryFileSource fetches files from a hosted repository
type RepositoryFileSource interface {
	// GetDefaultBranch returns the default branch name for the repository
	GetDefaultBranch(ctx context.Context) (string, error)

	// FetchFileContent fetches the content of a file from the repository
	FetchFileContent(ctx context.Context, path, ref string) (string, error)
}

// ParseSource parses one of:
//
//	file:<path>
//	github:<owner>/<repo>/<path>[@ref]
//	gitlab:<project/path>//<file path>[@ref]
func ParseSource(spec string) (Source, error) {
	kind, rest, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok || rest == "" {
		return Source{}, fmt.Errorf("invalid template source %q: expected <kind>:<location>", spec)
	}

	src := Source{Kind: strings.ToLower(kind), Spec: spec}

	switch src.Kind {
	case KindFile:
		src.Path = rest
		return src, nil

	case KindGitHub:
		location, ref := splitRef(rest)
		parts := strings.SplitN(location, "/", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return Source{}, fmt.Errorf("invalid GitHub template source %q: expected github:<owner>/<repo>/<path>[@ref]", spec)
		}
		src.Owner, src.Repo, src.Path, src.Ref = parts[0], parts[1], parts[2], ref
		return src, nil

	case KindGitLab:
		location, ref := splitRef(rest)
		project, filePath, ok := strings.Cut(location, "//")
		if !ok || project == "" || filePath == "" {
			return Source{}, fmt.Errorf("invalid GitLab template source %q: expected gitlab:<project/path>//<file path>[@ref]", spec)
		}
		src.Project, src.Path, src.Ref = project, filePath, ref
		return src, nil

	default:
		return Source{}, fmt.Errorf("unsupported template source kind %q in %q (expected file, github or gitlab)", kind, spec)
	}
}

// splitRef separates a trailing @ref from a repository location
func splitRef(location string) (string, string) {
	if i := strings.LastIndex(location, "@"); i >= 0 {
		return location[:i], location[i+1:]
	}
	return location, ""
}

// fetchRepositoryFile resolves the ref and reads one file from a repository source
func fetchRepositoryFile(ctx context.Context, repo RepositoryFileSource, path, ref string) (string, error) {
	if ref == "" {
		branch, err := repo.GetDefaultBranch(ctx)
		if err != nil {
			return "", err
		}
		ref = branch
	}
	return repo.FetchFileContent(ctx, path, ref)
}
