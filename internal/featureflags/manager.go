// Package featureflags evaluates runtime feature flags configured as a simple
// key=value list.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager evaluates feature flags defined in a comma-separated config string.
// Example: "similar_listings=on,new_search=25%,inquiries=off"
type Manager struct {
	flags map[string]string
}

// NewManager creates a feature-flag manager from a comma-separated config string.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := normalize(parts[0])
		value := normalize(parts[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled reports whether a flag is on for a given subject (typically the
// client IP, so percentage rollouts are sticky per visitor).
// Supported values:
// - on/true/1
// - off/false/0
// - N% (deterministic rollout by subject, e.g. 25%)
// Unknown flags are off.
func (m *Manager) Enabled(name, subject string) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return false
		}
		if pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		if subject == "" {
			return false
		}
		return rolloutBucket(name, subject) < pct
	}

	return false
}

// EnabledDefault is Enabled with a fallback for flags that are absent from
// the configuration. Kill switches default to on.
func (m *Manager) EnabledDefault(name, subject string, def bool) bool {
	if m == nil {
		return def
	}
	if _, ok := m.flags[normalize(name)]; !ok {
		return def
	}
	return m.Enabled(name, subject)
}

// Raw returns a copy of configured flags.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Snapshot returns evaluated flag status for one subject.
func (m *Manager) Snapshot(subject string) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, subject)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func rolloutBucket(name, subject string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(normalize(name) + ":" + subject))
	return int(h.Sum32() % 100)
}
