package compress

import (
	"compress/gzip"
	"net/http"
	"strings"

	logger "github.com/sirupsen/logrus"
)

// RequestUngzipper transparently decodes request bodies sent with Content-Encoding: gzip.
type RequestUngzipper struct{}

func (u RequestUngzipper) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if !strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		reader, err := gzip.NewReader(r.Body)
		if err != nil {
			logger.Warningf("Could not read gzip body: %s", err)
			http.Error(w, "Could not decompress body", http.StatusBadRequest)
			return
		}
		defer reader.Close()

		r.Body = reader
		r.Header.Del("Content-Encoding")
		r.Header.Del("Content-Length")
		r.ContentLength = -1
		next.ServeHTTP(w, r)
	})
}
