package response

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/core/handler"
)

// Redirect creates a 302 Found response, or HX-Location for HTMX requests.
func Redirect(url string) handler.Response {
	return redirect(url, http.StatusFound)
}

// RedirectSeeOther creates a 303 See Other response. Form handlers use it so
// the browser follows up with GET.
func RedirectSeeOther(url string) handler.Response {
	return redirect(url, http.StatusSeeOther)
}

// RedirectTemporary creates a 307 response that preserves the request method.
func RedirectTemporary(url string) handler.Response {
	return redirect(url, http.StatusTemporaryRedirect)
}

func redirect(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if IsHTMX(r) {
			w.Header().Set(HeaderHXLocation, url)
			w.WriteHeader(http.StatusOK)
			return nil
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
