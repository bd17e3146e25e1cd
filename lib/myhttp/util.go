package myhttp

import (
	"fmt"
	"os"
)

// HostnameWithScheme is the externally reachable base-url of this service,
// used when registering webhook push-subscriptions.
func HostnameWithScheme() string {
	hostname := os.Getenv("PUBLIC_HOSTNAME")
	if hostname != "" {
		return fmt.Sprintf("https://%s", hostname)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return fmt.Sprintf("http://localhost:%s", port)
}
