package db

import (
	"net/url"
	"regexp"
	"strings"
)

var kvPairRegex = regexp.MustCompile(`(?i)\b(host|user|password|dbname|port|sslmode)=`)

// NormalizeDSN accepts a postgres URL or a lib/pq key=value list. Quotes and
// extra whitespace are trimmed and sslmode=disable is added to key=value
// lists that lack an sslmode.
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return s
	}
	if !kvPairRegex.MatchString(s) {
		return s
	}
	cleaned := strings.Join(strings.Fields(s), " ")
	if !strings.Contains(strings.ToLower(cleaned), "sslmode=") {
		cleaned += " sslmode=disable"
	}
	return cleaned
}

// ToURLDSN converts a key=value postgres DSN to URL form, which the SQL
// migration runner requires. Incomplete lists are returned unchanged.
func ToURLDSN(kvDSN string) string {
	lower := strings.ToLower(kvDSN)
	if kvDSN == "" || strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return kvDSN
	}
	m := map[string]string{}
	for _, part := range strings.Fields(kvDSN) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			m[strings.ToLower(kv[0])] = kv[1]
		}
	}
	host, user, dbname := m["host"], m["user"], m["dbname"]
	if host == "" || user == "" || dbname == "" {
		return kvDSN
	}
	u := &url.URL{Scheme: "postgres", Host: host, Path: "/" + dbname}
	if port := m["port"]; port != "" {
		u.Host = host + ":" + port
	}
	if pass := m["password"]; pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	if sslmode, ok := m["sslmode"]; ok {
		u.RawQuery = url.Values{"sslmode": {sslmode}}.Encode()
	}
	return u.String()
}

var (
	kvPassword  = regexp.MustCompile(`(?i)(password=)(\S+)`)
	urlPassword = regexp.MustCompile(`^([a-z][a-z0-9+.-]*://[^:/@]+:)([^@]+)(@)`)
	dsnPassword = regexp.MustCompile(`^([^:/@]+:)([^@]+)(@)`)
)

// MaskDSN hides the password in key=value, URL and mysql style DSNs.
func MaskDSN(dsn string) string {
	if kvPassword.MatchString(dsn) {
		return kvPassword.ReplaceAllString(dsn, `${1}***`)
	}
	if urlPassword.MatchString(dsn) {
		return urlPassword.ReplaceAllString(dsn, `${1}***${3}`)
	}
	return dsnPassword.ReplaceAllString(dsn, `${1}***${3}`)
}
