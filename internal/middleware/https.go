package middleware

import "net/http"

// ForceHTTPS redirects plain HTTP requests to HTTPS. TLS terminates at the
// hosting proxy, so X-Forwarded-Proto is trusted to carry the original scheme.
func ForceHTTPS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS == nil && r.Header.Get("X-Forwarded-Proto") != "https" {
			http.Redirect(w, r, "https://"+r.Host+r.URL.RequestURI(), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
