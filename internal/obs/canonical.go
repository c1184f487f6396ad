package obs

import "strings"

// CanonicalPath collapses identifier-bearing URL paths into route templates so
// metric label cardinality stays bounded. Unknown paths are passed through
// without their query string.
func CanonicalPath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}

	switch {
	case strings.HasPrefix(path, "/v1/site/sections/"):
		return "/v1/site/sections/:id"
	case strings.HasPrefix(path, "/v1/site/pages/"):
		return "/v1/site/pages/:prefix"
	case strings.HasPrefix(path, "/v1/admin/content/"):
		return "/v1/admin/content/:id"
	case strings.HasPrefix(path, "/v1/admin/gallery/"):
		return "/v1/admin/gallery/:id"
	case strings.HasPrefix(path, "/v1/admin/enquiries/"):
		rest := strings.TrimPrefix(path, "/v1/admin/enquiries/")
		if strings.HasSuffix(rest, "/read") {
			return "/v1/admin/enquiries/:id/read"
		}
		return "/v1/admin/enquiries/:id"
	}
	return path
}
