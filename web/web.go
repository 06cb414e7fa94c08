// Package web holds the embedded templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates static
var files embed.FS

func Templates() http.FileSystem { return sub("templates") }

func Static() http.FileSystem { return sub("static") }

func sub(dir string) http.FileSystem {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(f)
}
