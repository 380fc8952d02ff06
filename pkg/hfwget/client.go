// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

package hfwget

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the default HuggingFace Hub URL.
// Can be overridden via Settings.Endpoint for mirrors or enterprise deployments.
const DefaultEndpoint = "https://huggingface.co"

// getEndpoint returns the endpoint to use, falling back to default if empty.
func getEndpoint(endpoint string) string {
	if endpoint == "" {
		return DefaultEndpoint
	}
	return strings.TrimSuffix(endpoint, "/")
}

// hfNode is one element of a tree API response.
type hfNode struct {
	Type string `json:"type"` // "file"|"directory" (sometimes "blob"|"tree")
	Path string `json:"path"`
}

// HubFS lists a Hub repository the way the Hub file system does: every path
// starts with the repository ID, e.g. "org/model/sub/b.bin".
type HubFS struct {
	job      Job
	token    string
	endpoint string
	httpc    *http.Client
}

// NewHubFS returns a Lister for the repository named by job.
func NewHubFS(job Job, cfg Settings) *HubFS {
	if job.Revision == "" {
		job.Revision = DefaultRevision
	}
	return &HubFS{
		job:      job,
		token:    cfg.Token,
		endpoint: cfg.Endpoint,
		httpc:    buildHTTPClient(),
	}
}

// Root is the path to pass to ListFiles to walk the whole repository.
func (fs *HubFS) Root() string {
	return fs.job.Repo
}

// List returns the direct children of path, which must be the repository ID
// or a path below it.
func (fs *HubFS) List(ctx context.Context, path string) ([]Entry, error) {
	prefix, ok := repoRelative(fs.job.Repo, path)
	if !ok {
		return nil, fmt.Errorf("path %q is outside repository %q", path, fs.job.Repo)
	}

	var entries []Entry
	next := treeURL(fs.endpoint, fs.job, prefix)
	for next != "" {
		nodes, link, err := fs.page(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			e := Entry{Name: fs.job.Repo + "/" + n.Path, Type: EntryFile}
			if n.Type == "directory" || n.Type == "tree" {
				e.Type = EntryDirectory
			}
			entries = append(entries, e)
		}
		next = link
	}
	return entries, nil
}

// page fetches one page of the tree API and returns the next page URL, if any.
func (fs *HubFS) page(ctx context.Context, reqURL string) ([]hfNode, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, "", err
	}
	addAuth(req, fs.token)
	resp, err := fs.httpc.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			URL:        reqURL,
			Message:    strings.TrimSpace(string(body)),
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			apiErr.Message = fmt.Sprintf("repo requires token or you do not have access (visit %s)", agreementURL(fs.endpoint, fs.job))
		case http.StatusForbidden:
			apiErr.Message = fmt.Sprintf("please accept the repository terms: %s", agreementURL(fs.endpoint, fs.job))
		}
		return nil, "", apiErr
	}

	var nodes []hfNode
	if err := json.NewDecoder(resp.Body).Decode(&nodes); err != nil {
		return nil, "", fmt.Errorf("decode tree listing: %w", err)
	}
	return nodes, nextLink(resp.Header.Get("Link")), nil
}

// buildHTTPClient creates an HTTP client with sensible defaults.
func buildHTTPClient() *http.Client {
	tr := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: tr}
}

// addAuth adds authentication and user-agent headers to a request.
func addAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("User-Agent", "hfwget/1")
}

// nextLink extracts the rel="next" target of an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segs := strings.Split(part, ";")
		if len(segs) < 2 {
			continue
		}
		target := strings.TrimSpace(segs[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, p := range segs[1:] {
			p = strings.ReplaceAll(strings.TrimSpace(p), " ", "")
			if p == `rel="next"` || p == "rel=next" {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}

// repoRelative strips the repository ID from path. The second result is
// false when path does not belong to the repository.
func repoRelative(repo, path string) (string, bool) {
	path = strings.Trim(path, "/")
	if path == repo {
		return "", true
	}
	rel, ok := strings.CutPrefix(path, repo+"/")
	return rel, ok
}

// URL builders - all accept endpoint to support custom mirrors

func resolveURL(endpoint string, job Job, path string) string {
	ep := getEndpoint(endpoint)
	// Note: job.Repo contains "/" which must NOT be escaped (HuggingFace requires literal slash)
	if job.IsDataset {
		return fmt.Sprintf("%s/datasets/%s/resolve/%s/%s", ep, job.Repo, url.PathEscape(job.Revision), pathEscapeAll(path))
	}
	return fmt.Sprintf("%s/%s/resolve/%s/%s", ep, job.Repo, url.PathEscape(job.Revision), pathEscapeAll(path))
}

func treeURL(endpoint string, job Job, prefix string) string {
	ep := getEndpoint(endpoint)
	kind := "models"
	if job.IsDataset {
		kind = "datasets"
	}
	// Build URL without trailing slash when prefix is empty
	if prefix == "" {
		return fmt.Sprintf("%s/api/%s/%s/tree/%s", ep, kind, job.Repo, url.PathEscape(job.Revision))
	}
	return fmt.Sprintf("%s/api/%s/%s/tree/%s/%s", ep, kind, job.Repo, url.PathEscape(job.Revision), pathEscapeAll(prefix))
}

func agreementURL(endpoint string, job Job) string {
	ep := getEndpoint(endpoint)
	if job.IsDataset {
		return fmt.Sprintf("%s/datasets/%s", ep, job.Repo)
	}
	return fmt.Sprintf("%s/%s", ep, job.Repo)
}
