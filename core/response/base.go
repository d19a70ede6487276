package response

import (
	"net/http"

	"github.com/dmitrymomot/marketplace/core/handler"
)

// Render executes resp against ctx, falling back to a plain 500 on failure.
// Error handlers use it since they have no one left to return an error to.
func Render(ctx handler.Context, resp handler.Response) {
	if resp == nil {
		return
	}
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func write(contentType string, status int, body []byte) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(body) == 0 {
			return nil
		}
		_, err := w.Write(body)
		return err
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return write("text/plain; charset=utf-8", http.StatusOK, []byte(content))
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return write("text/plain; charset=utf-8", status, []byte(content))
}

// HTML creates a text/html response from pre-rendered markup.
func HTML(content string) handler.Response {
	return write("text/html; charset=utf-8", http.StatusOK, []byte(content))
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return write("", http.StatusNoContent, nil)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Response {
	return write("", code, nil)
}
