package job

import (
	"net/url"
	"sort"
	"strings"
)

// CanonicalURL returns the identity form of a posting URL. The scheme and
// host are lowercased, the fragment and tracking parameters dropped and the
// query sorted. Unparseable input is returned trimmed.
func CanonicalURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		if isTrackingParam(k) {
			q.Del(k)
		}
	}
	for k := range q {
		sort.Strings(q[k])
	}
	u.RawQuery = q.Encode()

	return strings.TrimSuffix(u.String(), "/")
}

func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	if strings.HasPrefix(k, "utm_") {
		return true
	}
	switch k {
	case "gclid", "fbclid", "msclkid", "mc_cid", "mc_eid", "mkt_tok":
		return true
	}
	return false
}
