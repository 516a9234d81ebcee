package middleware

import (
	"net/http"
	"strings"
)

type cspDirective struct {
	name    string
	sources []string
}

// contentSecurityPolicy lists the origins the single-page app loads from:
// Google identity and reCAPTCHA, Stripe, the Firebase auth frame, the
// Cloudflare CDN, Google Fonts and Cloudinary images.
func contentSecurityPolicy(reportURI string) string {
	directives := []cspDirective{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{
			"'self'",
			"https://apis.google.com",
			"https://js.stripe.com",
			"https://www.google.com/recaptcha/api.js",
			"https://www.gstatic.com/recaptcha/releases/",
			"https://somnolentai.com",
		}},
		{"style-src", []string{
			"'self'",
			"https://cdnjs.cloudflare.com",
			"https://fonts.googleapis.com",
			"'unsafe-inline'",
		}},
		{"object-src", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"connect-src", []string{
			"'self'",
			"https://identitytoolkit.googleapis.com",
			"https://api.stripe.com",
		}},
		{"font-src", []string{
			"'self'",
			"https://cdnjs.cloudflare.com",
			"https://fonts.gstatic.com",
		}},
		{"frame-src", []string{
			"'self'",
			"https://js.stripe.com",
			"https://somnolentai-3b507.firebaseapp.com",
		}},
		{"img-src", []string{"'self'", "https://res.cloudinary.com", "data:"}},
		{"manifest-src", []string{"'self'"}},
		{"media-src", []string{"'self'"}},
		{"worker-src", []string{"'none'"}},
	}
	if reportURI != "" {
		directives = append(directives, cspDirective{"report-uri", []string{reportURI}})
	}
	directives = append(directives, cspDirective{name: "upgrade-insecure-requests"})

	parts := make([]string, 0, len(directives))
	for _, d := range directives {
		if len(d.sources) == 0 {
			parts = append(parts, d.name)
			continue
		}
		parts = append(parts, d.name+" "+strings.Join(d.sources, " "))
	}
	return strings.Join(parts, ";")
}

// SecurityHeaders sets the content security policy and the usual hardening headers.
func SecurityHeaders(reportURI string) func(http.Handler) http.Handler {
	headers := map[string]string{
		"Content-Security-Policy":           contentSecurityPolicy(reportURI),
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"Referrer-Policy":                   "no-referrer",
		"Strict-Transport-Security":         "max-age=31536000; includeSubDomains",
		"X-Content-Type-Options":            "nosniff",
		"X-DNS-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Frame-Options":                   "SAMEORIGIN",
		"X-Permitted-Cross-Domain-Policies": "none",
		"X-XSS-Protection":                  "0",
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for k, v := range headers {
				h.Set(k, v)
			}
			h.Del("X-Powered-By")
			next.ServeHTTP(w, r)
		})
	}
}
