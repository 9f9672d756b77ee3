// Package web embeds the HTML templates and static assets so the server
// binary is self-contained.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var content embed.FS

// Templates holds base.html and one file per page.
func Templates() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		panic(err) // directory is embedded at build time
	}
	return sub
}

// Static holds the files served under /static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
