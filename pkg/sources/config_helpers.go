package sources

import "strings"

// ConfigString returns the trimmed string value for key from source.Config or a fallback.
func ConfigString(s Source, key, fallback string) string {
	if s.Config != nil {
		if raw, ok := s.Config[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

const (
	ConfigUserAgentKey      = "user_agent"
	ConfigAcceptKey         = "accept"
	ConfigAcceptLanguageKey = "accept_language"

	defaultUserAgent = "wikideck-forge/1.0 (educational use)"
)

// Headers builds the common request headers from a source config.
// A default User-Agent is always present; wiki endpoints reject anonymous clients.
func Headers(s Source) map[string]string {
	headers := make(map[string]string, 3)

	headers["User-Agent"] = ConfigString(s, ConfigUserAgentKey, defaultUserAgent)
	if v := ConfigString(s, ConfigAcceptKey, ""); v != "" {
		headers["Accept"] = v
	}
	if v := ConfigString(s, ConfigAcceptLanguageKey, ""); v != "" {
		headers["Accept-Language"] = v
	}

	return headers
}
