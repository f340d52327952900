package server

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/kartoza/house-price-predictor/internal/httputil"
)

// recoverPanics turns a handler panic into a 500 JSON error
func recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				httputil.RespondError(w, http.StatusInternalServerError, fmt.Sprint(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
