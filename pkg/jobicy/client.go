package jobicy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
)

const (
	defaultBaseURL  = "https://jobicy.com"
	defaultPageSize = 20
)

// NewClient instantiates a Jobicy API client
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("jobicy: parse base url: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		pageSize:   pageSize,
	}, nil
}

// SearchJobs queries remote jobs tagged with the keyword. A non-2xx
// response is returned as *StatusError; a payload without a jobs array
// yields no jobs and no error.
func (c *Client) SearchJobs(ctx context.Context, tag string) ([]Job, error) {
	if c == nil {
		return nil, fmt.Errorf("jobicy: client is nil")
	}

	u, err := c.buildSearchURL(tag)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("jobicy: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jobicy: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("jobicy: decode response: %w", err)
	}

	return decodeJobs(payload.Jobs), nil
}

func (c *Client) buildSearchURL(tag string) (string, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", fmt.Errorf("jobicy: tag is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("jobicy: parse base url: %w", err)
	}

	u.Path = path.Join(u.Path, "api", "v2", "remote-jobs")

	values := url.Values{}
	values.Set("count", strconv.Itoa(c.pageSize))
	values.Set("tag", tag)

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func decodeJobs(raw json.RawMessage) []Job {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return []Job{}
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return []Job{}
	}

	jobs := make([]Job, 0, len(elems))
	for _, elem := range elems {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			continue
		}
		var posting jobPosting
		if err := json.Unmarshal(elem, &posting); err != nil {
			continue
		}
		jobs = append(jobs, mapPosting(posting))
	}
	return jobs
}

func mapPosting(posting jobPosting) Job {
	excerpt := posting.JobExcerpt
	if excerpt == "" {
		excerpt = posting.JobDescription
	}

	return Job{
		ID:          string(posting.ID),
		URL:         strings.TrimSpace(posting.URL),
		Title:       strings.TrimSpace(posting.JobTitle),
		CompanyName: strings.TrimSpace(posting.CompanyName),
		CompanyLogo: posting.CompanyLogo,
		JobType:     posting.JobType.String(),
		JobLevel:    posting.JobLevel,
		Description: posting.JobDescription,
		PubDate:     posting.PubDate,
		Excerpt:     Excerpt(excerpt, excerptLength),
	}
}
