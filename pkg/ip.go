package pkg

import (
	"net/http"
	"strings"
)

// ReadUserIP gets the IP of the request originator, checking the
// reverse proxy headers first, falling back to the remote address
func ReadUserIP(r *http.Request) string {
	ipAddr := r.Header.Get("X-Real-Ip")
	if ipAddr == "" {
		ipAddr = r.Header.Get("X-Forwarded-For")
	}
	if ipAddr == "" {
		ipAddr = r.RemoteAddr
	}

	// strip the port, if present
	if host, _, found := strings.Cut(ipAddr, ":"); found {
		return host
	}
	return ipAddr
}
