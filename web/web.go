// Package web holds the HTML templates and static assets served by the calculator.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Templates returns the page templates.
func Templates() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static assets (script and stylesheet).
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
