package request

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/render"
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v. An empty body leaves v untouched
// so that validation can report the missing fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := render.DecodeJSON(r.Body, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

// ReadBody returns the raw request body.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}
