package http

import (
	"html/template"
	"net/url"
	"strings"
)

// fileHref turns a stored file link into an href the browser can follow.
// Absolute local paths become file:// URLs; only http, https and file
// schemes are trusted, anything else is replaced with "#".
func fileHref(link string) template.URL {
	link = strings.TrimSpace(link)
	if isWindowsPath(link) {
		u := url.URL{Scheme: "file", Path: "/" + strings.ReplaceAll(link, `\`, "/")}
		return template.URL(u.String())
	}
	if strings.HasPrefix(link, `\\`) {
		// UNC share: \\host\share\file.pdf
		parts := strings.SplitN(strings.ReplaceAll(link[2:], `\`, "/"), "/", 2)
		u := url.URL{Scheme: "file", Host: parts[0]}
		if len(parts) == 2 {
			u.Path = "/" + parts[1]
		}
		return template.URL(u.String())
	}
	if strings.HasPrefix(link, "/") && !strings.HasPrefix(link, "//") {
		u := url.URL{Scheme: "file", Path: link}
		return template.URL(u.String())
	}

	u, err := url.Parse(link)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "file", "":
		return template.URL(link)
	}
	return "#"
}

// isWindowsPath matches drive-letter paths such as C:\Books\dune.pdf or C:/Books.
func isWindowsPath(link string) bool {
	if len(link) < 3 || link[1] != ':' || (link[2] != '\\' && link[2] != '/') {
		return false
	}
	c := link[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
