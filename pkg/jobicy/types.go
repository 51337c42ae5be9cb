package jobicy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Config defines Jobicy API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	PageSize   int
}

// Client queries the Jobicy remote jobs API
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
}

// StatusError is returned for any non-2xx upstream response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("jobicy: API error (%d)", e.StatusCode)
	}
	return fmt.Sprintf("jobicy: API error (%d): %s", e.StatusCode, e.Body)
}

// Job represents a normalized Jobicy posting
type Job struct {
	ID          string
	URL         string
	Title       string
	CompanyName string
	CompanyLogo string
	JobType     string
	JobLevel    string
	Description string
	PubDate     string
	Excerpt     string
}

type searchResponse struct {
	Jobs json.RawMessage `json:"jobs"`
}

type jobPosting struct {
	ID             flexString `json:"id"`
	URL            string     `json:"url"`
	JobTitle       string     `json:"jobTitle"`
	CompanyName    string     `json:"companyName"`
	CompanyLogo    string     `json:"companyLogo"`
	JobType        flexList   `json:"jobType"`
	JobLevel       string     `json:"jobLevel"`
	JobDescription string     `json:"jobDescription"`
	JobExcerpt     string     `json:"jobExcerpt"`
	PubDate        string     `json:"pubDate"`
}

// flexString accepts a JSON string, number or null
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*f = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return nil
		}
		if i, err := n.Int64(); err == nil {
			*f = flexString(strconv.FormatInt(i, 10))
			return nil
		}
		*f = flexString(n.String())
	}
	return nil
}

// flexList accepts a single string or an array of strings
type flexList []string

func (f *flexList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	if data[0] == '[' {
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		*f = out
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = nil
		return nil
	}
	if s = strings.TrimSpace(s); s != "" {
		*f = []string{s}
	}
	return nil
}

func (f flexList) String() string {
	return strings.Join(f, ", ")
}
