// Copyright 2026 The Fresh Keeper Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// CookieFilePath returns where the session cookie persists across
// runs. Without it, every invocation would start logged out: the
// server's session is a cookie, and a fresh process has an empty jar.
// Resolution order: $FRESHKEEPER_COOKIE_FILE, then
// $XDG_CONFIG_HOME/freshkeeper/cookies.json, then
// ~/.config/freshkeeper/cookies.json.
func CookieFilePath() string {
	if path := os.Getenv("FRESHKEEPER_COOKIE_FILE"); path != "" {
		return path
	}
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "freshkeeper", "cookies.json")
}

// persistedCookie is the stored form of one cookie. Only the fields
// needed to replay the cookie are kept.
type persistedCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Path     string    `json:"path,omitempty"`
	Domain   string    `json:"domain,omitempty"`
	Expires  time.Time `json:"expires,omitempty"`
	Secure   bool      `json:"secure,omitempty"`
	HTTPOnly bool      `json:"http_only,omitempty"`
}

// persistentJar wraps the standard cookie jar and mirrors the cookies
// for one server URL to a file, so the login session survives across
// process invocations. The file is written with mode 0600: it holds
// the session token.
type persistentJar struct {
	mu        sync.Mutex
	inner     http.CookieJar
	filePath  string
	serverURL *url.URL
}

// newPersistentJar creates a jar bound to the given server URL,
// loading any previously saved cookies. A missing file is a clean
// start, not an error.
func newPersistentJar(filePath, serverURL string) (*persistentJar, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("api: parse server URL: %w", err)
	}
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: creating cookie jar: %w", err)
	}
	jar := &persistentJar{
		inner:     inner,
		filePath:  filePath,
		serverURL: parsed,
	}
	if err := jar.load(); err != nil {
		return nil, err
	}
	return jar, nil
}

// SetCookies implements http.CookieJar. Each update is mirrored to
// disk so the session cookie from a login response is durable before
// the process exits.
func (jar *persistentJar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	jar.mu.Lock()
	defer jar.mu.Unlock()
	jar.inner.SetCookies(u, cookies)
	jar.save()
}

// Cookies implements http.CookieJar.
func (jar *persistentJar) Cookies(u *url.URL) []*http.Cookie {
	jar.mu.Lock()
	defer jar.mu.Unlock()
	return jar.inner.Cookies(u)
}

// load reads the saved cookies and seeds the inner jar. Expired
// entries are dropped on the way in.
func (jar *persistentJar) load() error {
	data, err := os.ReadFile(jar.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("api: read cookie file: %w", err)
	}

	var saved []persistedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt cookie file means logging in again, not a crash.
		return nil
	}

	now := time.Now()
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		if !c.Expires.IsZero() && c.Expires.Before(now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HttpOnly: c.HTTPOnly,
		})
	}
	if len(cookies) > 0 {
		jar.inner.SetCookies(jar.serverURL, cookies)
	}
	return nil
}

// save writes the current cookies for the server URL. Best-effort: a
// write failure only costs the user a re-login next run.
func (jar *persistentJar) save() {
	cookies := jar.inner.Cookies(jar.serverURL)
	saved := make([]persistedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, persistedCookie{
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  c.Expires,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		})
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(jar.filePath), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(jar.filePath, data, 0o600)
}
