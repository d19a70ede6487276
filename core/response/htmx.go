package response

import "net/http"

const (
	HeaderHXRequest  = "HX-Request"
	HeaderHXLocation = "HX-Location"
	HeaderHXTrigger  = "HX-Trigger"
	HeaderHXRefresh  = "HX-Refresh"
)

// IsHTMX reports whether r was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}
