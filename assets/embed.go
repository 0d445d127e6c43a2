package assets

import (
	"embed"
	"io/fs"
)

//go:embed levels
var levelFiles embed.FS

// Levels returns the built-in level directory: index.yaml plus one text
// file per hand-made level.
func Levels() fs.FS {
	sub, err := fs.Sub(levelFiles, "levels")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}
