// Package static serves embedded assets through typed handlers.
//
//	//go:embed assets/*
//	var assetsFS embed.FS
//
//	r.Get("/assets/*", static.FS[*Context](assetsFS,
//		static.WithSubFS("assets"),
//		static.WithFSStripPrefix("/assets"),
//	))
//
// Directory listings are never served. A directory answers only when it
// contains index.html.
package static
