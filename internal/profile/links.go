package profile

import (
	"net/url"
	"strings"
)

// FixURL makes sure a link carries a scheme, defaulting to https. The rest of
// the link is kept as written, so already complete links are returned as is.
func FixURL(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}

	if strings.HasPrefix(link, "//") {
		return "https:" + link
	}

	if u, err := url.Parse(link); err == nil && u.Scheme != "" {
		if u.Host != "" || u.Scheme == "mailto" || u.Scheme == "tel" {
			return link
		}
	}

	return "https://" + link
}
