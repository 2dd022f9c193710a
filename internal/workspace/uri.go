package workspace

import "strings"

// URIToPath converts an LSP URI to a filesystem path.
func URIToPath(uri string) string {
	path := strings.TrimPrefix(uri, "file://")
	path = strings.ReplaceAll(path, "%20", " ")
	return path
}

// PathToURI converts a filesystem path to an LSP URI.
func PathToURI(path string) string {
	uri := strings.ReplaceAll(path, " ", "%20")
	return "file://" + uri
}
