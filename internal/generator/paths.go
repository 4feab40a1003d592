package generator

import (
	"path"
	"strings"
)

const indexFileName = "index.html"

// outputPath maps a public route path ("/blog/my-post/") onto the relative
// location of its exported document ("blog/my-post/index.html"). The root
// route maps directly to index.html.
func outputPath(route string) string {
	clean := strings.Trim(route, "/")
	if clean == "" {
		return indexFileName
	}
	return path.Join(clean, indexFileName)
}
