package media

import (
	"net/url"
	"path"
	"strings"
)

// EmbedURL turns a YouTube watch or short link into its /embed/ form.
// Any other URL, including one that does not parse, is returned unchanged.
func EmbedURL(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || !isYouTube(u.Hostname()) {
		return raw
	}

	id := videoID(u)
	if id == "" {
		return raw
	}

	return "https://www.youtube.com/embed/" + id
}

// videoID reads the id from the v parameter of a watch link or from the last
// segment of a youtu.be, /embed/ or /shorts/ path.
func videoID(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	switch {
	case u.Path == "/watch":
		return u.Query().Get("v")
	case strings.HasSuffix(host, "youtu.be"),
		strings.HasPrefix(u.Path, "/embed/"),
		strings.HasPrefix(u.Path, "/shorts/"):
		id := path.Base(u.Path)
		if id == "/" || id == "." || id == "embed" || id == "shorts" {
			return ""
		}
		return id
	default:
		return ""
	}
}

func isYouTube(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	host = strings.TrimPrefix(host, "m.")
	return host == "youtube.com" || host == "youtu.be" || host == "youtube-nocookie.com"
}
