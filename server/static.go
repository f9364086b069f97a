package server

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

// Resolver returns the content of a file under some root, or an error when it cannot.
type Resolver interface {
	Open(name string) ([]byte, error)
}

// DirResolver resolves names under a directory. Names cannot escape the root.
type DirResolver struct {
	fsys fs.FS
}

func NewDirResolver(root string) DirResolver {
	return DirResolver{fsys: os.DirFS(root)}
}

// NewFSResolver is mostly useful for embedded or in-memory file systems.
func NewFSResolver(fsys fs.FS) DirResolver {
	return DirResolver{fsys: fsys}
}

func (d DirResolver) Open(name string) ([]byte, error) {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		name = "."
	}
	return fs.ReadFile(d.fsys, name)
}
