// Package clientip resolves the originating client address of an HTTP request.
//
// Proxy headers are consulted in priority order: CF-Connecting-IP,
// DO-Connecting-IP, the leftmost X-Forwarded-For entry, X-Real-IP, and finally
// RemoteAddr. Every candidate is parsed and normalized; unparsable values and
// the unspecified address are skipped.
//
//	ip := clientip.GetIP(r)
//
// The headers are trusted as sent, so deploy behind a proxy that overwrites
// them.
package clientip
