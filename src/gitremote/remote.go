package gitremote

import (
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote is a parsed git remote URL.
type Remote struct {
	Raw      string
	Protocol string // "ssh", "https", "http", "git", "file"
	User     string
	Host     string
	Path     string // repository path as written, e.g. "org/repo.git"

	endpoint *transport.Endpoint
}

// Parse interprets a remote URL the way git does. Handles scp-like SSH
// (git@host:org/repo.git), URL forms (ssh://, https://, git://) and local paths.
func Parse(url string) (*Remote, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("empty remote url")
	}
	ep, err := transport.NewEndpoint(url)
	if err != nil {
		return nil, fmt.Errorf("parsing remote %q: %w", url, err)
	}
	return &Remote{
		Raw:      url,
		Protocol: ep.Protocol,
		User:     ep.User,
		Host:     ep.Host,
		Path:     ep.Path,
		endpoint: ep,
	}, nil
}

// IsSSH reports whether cloning this remote goes through ssh.
func (r *Remote) IsSSH() bool {
	return r.Protocol == "ssh"
}

// HasPassword reports whether the URL carries an inline password or token.
func (r *Remote) HasPassword() bool {
	return r.endpoint != nil && r.endpoint.Password != ""
}

// Redacted returns the URL with any inline password masked, for display.
func (r *Remote) Redacted() string {
	if !r.HasPassword() {
		return r.Raw
	}
	ep := *r.endpoint
	ep.Password = "xxxxx"
	return ep.String()
}

// Name returns the short project name: the last path segment with the
// final extension stripped. Empty when the path has no usable segment.
func (r *Remote) Name() string {
	if r.Protocol == "file" {
		// go-git only recognizes scp-like remotes with a slash in the path,
		// so "git@host:repo.git" lands here as a local path.
		return nameFromRemote(r.Path)
	}
	return nameFromPath(r.Path)
}

// ProjectName derives the directory name git clone creates for url.
//
//	git@example.com:org/myproject.git   → "myproject"
//	https://example.com/org/myproject   → "myproject"
//	https://example.com/org/my.tool.git → "my.tool"
//
// Falls back to plain string splitting when the URL cannot be parsed.
func ProjectName(url string) string {
	if r, err := Parse(url); err == nil {
		return r.Name()
	}
	return nameFromRemote(url)
}

// nameFromRemote extracts the repository name without a parser.
// Handles SSH (git@host:org/repo.git) and HTTPS (https://host/org/repo.git).
func nameFromRemote(remote string) string {
	remote = strings.TrimSpace(remote)

	// SSH: git@host:org/repo
	if idx := strings.LastIndex(remote, ":"); idx != -1 && !strings.Contains(remote, "://") {
		remote = remote[idx+1:]
	}
	return nameFromPath(remote)
}

func nameFromPath(p string) string {
	p = strings.TrimRight(p, "/")
	if idx := strings.LastIndex(p, "/"); idx != -1 {
		p = p[idx+1:]
	}
	// Strip only the last extension; a leading dot is part of the name.
	if idx := strings.LastIndex(p, "."); idx > 0 {
		p = p[:idx]
	}
	return p
}
