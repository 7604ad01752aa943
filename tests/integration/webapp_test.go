// Package integration provides end-to-end tests against a running Wilayah server.
package integration

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds the configuration for integration tests.
type TestConfig struct {
	BaseURL string
}

// getTestConfig reads test configuration from environment variables.
func getTestConfig() TestConfig {
	return TestConfig{
		BaseURL: getEnv("WILAYAH_TEST_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// newBrowser creates an HTTP client that keeps cookies and follows redirects,
// behaving like a browser session.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
	}
}

// uniqueEmail returns an email address unlikely to collide across test runs.
func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// registerAndLogin creates an account and logs the browser in.
func registerAndLogin(t *testing.T, cfg TestConfig, browser *http.Client, username, email string) {
	t.Helper()

	resp, err := browser.PostForm(cfg.BaseURL+"/register", url.Values{
		"username": {username},
		"email":    {email},
		"password": {"rahasia123"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = browser.PostForm(cfg.BaseURL+"/login", url.Values{
		"email":    {email},
		"password": {"rahasia123"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := browser.Jar.Cookies(mustParseURL(t, cfg.BaseURL))
	require.NotEmpty(t, cookies, "login should set a session cookie")
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

// getBody fetches a page and returns its body.
func getBody(t *testing.T, browser *http.Client, pageURL string) string {
	t.Helper()

	resp, err := browser.Get(pageURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// TestFullWorkflow exercises the register, login, province and district flow.
func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := getTestConfig()
	browser := newBrowser(t)
	registerAndLogin(t, cfg, browser, "alice", uniqueEmail("alice"))

	// Dashboard is reachable after login.
	body := getBody(t, browser, cfg.BaseURL+"/dashboard")
	require.Contains(t, body, "alice")

	// Create a province.
	provinceName := fmt.Sprintf("Jawa Barat %d", time.Now().UnixNano())
	resp, err := browser.PostForm(cfg.BaseURL+"/provinsi/tambah", url.Values{
		"nama":       {provinceName},
		"diresmikan": {"2000-01-01"},
		"pulau":      {"Jawa"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body = getBody(t, browser, cfg.BaseURL+"/provinsi")
	require.Contains(t, body, provinceName)

	// The new province is selectable on the district form.
	body = getBody(t, browser, cfg.BaseURL+"/kabupaten/tambah")
	require.Contains(t, body, provinceName)

	provinceID := extractOptionValue(t, body, provinceName)

	// Create a district under it.
	districtName := fmt.Sprintf("Bandung %d", time.Now().UnixNano())
	resp, err = browser.PostForm(cfg.BaseURL+"/kabupaten/tambah", url.Values{
		"nama":       {districtName},
		"provinsiId": {provinceID},
		"diresmikan": {"1810-09-25"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The district list shows the district joined to its province.
	body = getBody(t, browser, cfg.BaseURL+"/kabupaten")
	require.Contains(t, body, districtName)
	require.Contains(t, body, provinceName)
}

// TestProvinceOwnershipIsolation verifies one user cannot see or edit
// another user's provinces.
func TestProvinceOwnershipIsolation(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := getTestConfig()

	alice := newBrowser(t)
	registerAndLogin(t, cfg, alice, "alice", uniqueEmail("alice"))

	provinceName := fmt.Sprintf("Sumatera Utara %d", time.Now().UnixNano())
	resp, err := alice.PostForm(cfg.BaseURL+"/provinsi/tambah", url.Values{
		"nama":       {provinceName},
		"diresmikan": {"1956-01-07"},
		"pulau":      {"Sumatera"},
	})
	require.NoError(t, err)
	resp.Body.Close()

	body := getBody(t, alice, cfg.BaseURL+"/provinsi")
	require.Contains(t, body, provinceName)
	provinceURL := extractProvinceLink(t, body, provinceName)

	bob := newBrowser(t)
	registerAndLogin(t, cfg, bob, "bob", uniqueEmail("bob"))

	// Bob's list does not include Alice's province.
	body = getBody(t, bob, cfg.BaseURL+"/provinsi")
	require.NotContains(t, body, provinceName)

	// Bob cannot open Alice's edit page either.
	resp, err = bob.Get(cfg.BaseURL + provinceURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestLoginRejectsBadCredentials verifies the generic credential error.
func TestLoginRejectsBadCredentials(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := getTestConfig()
	browser := newBrowser(t)
	email := uniqueEmail("carol")
	registerAndLogin(t, cfg, browser, "carol", email)

	fresh := newBrowser(t)
	resp, err := fresh.PostForm(cfg.BaseURL+"/login", url.Values{
		"email":    {email},
		"password": {"salah"},
	})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "Email atau password salah")
}

// TestLogoutEndsSession verifies the session cookie stops working after logout.
func TestLogoutEndsSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := getTestConfig()
	browser := newBrowser(t)
	registerAndLogin(t, cfg, browser, "dave", uniqueEmail("dave"))

	resp, err := browser.Get(cfg.BaseURL + "/logout")
	require.NoError(t, err)
	resp.Body.Close()

	// A protected page now lands on the login form.
	body := getBody(t, browser, cfg.BaseURL+"/provinsi")
	require.Contains(t, body, "Login")
}

// extractOptionValue pulls the value attribute of the select option whose
// label matches name.
func extractOptionValue(t *testing.T, body, name string) string {
	t.Helper()

	marker := ">" + name + "</option>"
	end := strings.Index(body, marker)
	require.GreaterOrEqual(t, end, 0, "option for %q not found", name)

	start := strings.LastIndex(body[:end], `value="`)
	require.GreaterOrEqual(t, start, 0)
	start += len(`value="`)

	quote := strings.Index(body[start:], `"`)
	require.GreaterOrEqual(t, quote, 0)
	return body[start : start+quote]
}

// extractProvinceLink finds the edit link for the province row with the
// given name.
func extractProvinceLink(t *testing.T, body, name string) string {
	t.Helper()

	row := strings.Index(body, name)
	require.GreaterOrEqual(t, row, 0, "province %q not found in list", name)

	rest := body[row:]
	start := strings.Index(rest, `href="/provinsi/`)
	require.GreaterOrEqual(t, start, 0)
	start += len(`href="`)

	quote := strings.Index(rest[start:], `"`)
	require.GreaterOrEqual(t, quote, 0)
	return rest[start : start+quote]
}
