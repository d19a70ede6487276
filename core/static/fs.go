package static

import (
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrymomot/marketplace/core/handler"
)

type fsConfig struct {
	fs          fs.FS
	stripPrefix string
	subPath     string
	maxAge      int
}

// FSOption configures FS.
type FSOption func(*fsConfig)

// WithFSStripPrefix removes prefix from the URL path before lookup, so
// "/assets/app.css" served with prefix "/assets" reads "app.css".
func WithFSStripPrefix(prefix string) FSOption {
	return func(c *fsConfig) {
		c.stripPrefix = prefix
	}
}

// WithSubFS serves only the subdirectory path of the filesystem.
func WithSubFS(path string) FSOption {
	return func(c *fsConfig) {
		c.subPath = path
	}
}

// WithMaxAge sets the Cache-Control max-age in seconds.
func WithMaxAge(seconds int) FSOption {
	return func(c *fsConfig) {
		c.maxAge = seconds
	}
}

// FS returns a handler serving files from fsys. It panics at startup when
// the sub path is invalid or the root cannot be opened.
func FS[C handler.Context](fsys fs.FS, opts ...FSOption) handler.HandlerFunc[C] {
	cfg := &fsConfig{fs: fsys}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.subPath != "" {
		sub, err := fs.Sub(fsys, cfg.subPath)
		if err != nil {
			panic("static.FS: invalid sub-path '" + cfg.subPath + "': " + err.Error())
		}
		cfg.fs = sub
	}
	if _, err := cfg.fs.Open("."); err != nil {
		panic("static.FS: filesystem is not accessible: " + err.Error())
	}

	fileServer := http.FileServer(neuteredFileSystem{fs: http.FS(cfg.fs)})
	if cfg.stripPrefix != "" {
		fileServer = http.StripPrefix(cfg.stripPrefix, fileServer)
	}

	return func(ctx C) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			if cfg.maxAge > 0 {
				w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(cfg.maxAge))
			}
			fileServer.ServeHTTP(w, r)
			return nil
		}
	}
}

// neuteredFileSystem hides directories without an index.html.
type neuteredFileSystem struct {
	fs http.FileSystem
}

func (nfs neuteredFileSystem) Open(path string) (http.File, error) {
	f, err := nfs.fs.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if s.IsDir() {
		index := strings.TrimSuffix(path, "/") + "/index.html"
		if _, err := nfs.fs.Open(index); err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
	}
	return f, nil
}
