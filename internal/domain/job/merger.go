package job

import (
	"strings"
	"sync"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// Merger accumulates postings from concurrent workers, keeping the first
// posting per identity. Two postings share an identity when they have the
// same non-empty id or the same non-empty canonical URL. Postings with
// neither are always admitted.
type Merger struct {
	mu      sync.Mutex
	seenID  map[string]struct{}
	seenURL map[string]struct{}
	jobs    []domain.JobPosting
}

// NewMerger returns an empty merger ready for concurrent Add calls
func NewMerger() *Merger {
	return &Merger{
		seenID:  make(map[string]struct{}),
		seenURL: make(map[string]struct{}),
		jobs:    []domain.JobPosting{},
	}
}

// Add admits the novel postings of one keyword batch and returns how
// many were admitted.
func (m *Merger) Add(keyword string, postings []domain.JobPosting) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	admitted := 0
	for _, p := range postings {
		id := strings.TrimSpace(p.ID)
		urlKey := CanonicalURL(p.URL)

		if _, dup := m.seenID[id]; id != "" && dup {
			continue
		}
		if _, dup := m.seenURL[urlKey]; urlKey != "" && dup {
			continue
		}

		if id != "" {
			m.seenID[id] = struct{}{}
		}
		if urlKey != "" {
			m.seenURL[urlKey] = struct{}{}
		}

		p.SourceKeyword = keyword
		m.jobs = append(m.jobs, p)
		admitted++
	}
	return admitted
}

// Jobs returns a copy of the admitted postings in admission order
func (m *Merger) Jobs() []domain.JobPosting {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.JobPosting, len(m.jobs))
	copy(out, m.jobs)
	return out
}

// Len reports how many postings have been admitted so far
func (m *Merger) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}
