package config

import (
	"log"
	"net/url"
)

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustURL(value, envName string) {
	MustNonEmpty(value, envName)
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		log.Fatalf("env %s is not an absolute url: %q", envName, value)
	}
}
