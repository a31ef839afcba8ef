package config

import (
	"fmt"
	"os"
	"strings"
)

const defaultAPIURL = "http://localhost:5000"

// APIURL returns the base URL for the Course API.
// It can be overridden with the COURSE_API_URL environment variable.
func APIURL() string {
	if v := os.Getenv("COURSE_API_URL"); v != "" {
		return v
	}
	return defaultAPIURL
}

// Credentials resolves Basic-Auth credentials for authenticated commands.
// userFlag is the -u value ("email:password"); when empty, COURSE_API_USER
// and COURSE_API_PASSWORD are used. The API has no token endpoint, so
// credentials are sent with every request and never written to disk.
func Credentials(userFlag string) (email, password string, err error) {
	if userFlag != "" {
		email, password, ok := strings.Cut(userFlag, ":")
		if !ok || email == "" || password == "" {
			return "", "", fmt.Errorf("expected -u email:password")
		}
		return email, password, nil
	}

	email = os.Getenv("COURSE_API_USER")
	password = os.Getenv("COURSE_API_PASSWORD")
	if email == "" || password == "" {
		return "", "", fmt.Errorf("no credentials: pass -u email:password or set COURSE_API_USER and COURSE_API_PASSWORD")
	}
	return email, password, nil
}
