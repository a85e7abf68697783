package vault

import (
	"fmt"
	"sort"
	"strings"
)

// Engine identifies the KV engine version behind a mount point. The two
// versions lay out backend paths differently: v2 reads and writes through
// data/ and lists through metadata/, v1 addresses secrets directly.
type Engine int

const (
	EngineKV1 Engine = iota + 1
	EngineKV2
)

func (e Engine) String() string {
	switch e {
	case EngineKV1:
		return "kv1"
	case EngineKV2:
		return "kv2"
	}
	return fmt.Sprintf("Engine(%d)", int(e))
}

// ParseEngine parses the engine kind used in the mounts section of the
// config file.
func ParseEngine(s string) (Engine, error) {
	switch s {
	case "kv1":
		return EngineKV1, nil
	case "kv2":
		return EngineKV2, nil
	}
	return 0, fmt.Errorf("unknown KV engine %q (expected kv1 or kv2)", s)
}

// Mount pairs a logical path prefix with the engine serving it.
type Mount struct {
	Prefix string
	Engine Engine
}

// MountTable holds the configured mount points. It is built once at startup
// and immutable afterwards.
type MountTable struct {
	mounts []Mount
}

// NewMountTable builds a table from the prefix to engine-kind mapping of
// the config file.
func NewMountTable(mounts map[string]string) (*MountTable, error) {
	table := make([]Mount, 0, len(mounts))
	seen := make(map[string]bool, len(mounts))
	for prefix, kind := range mounts {
		engine, err := ParseEngine(kind)
		if err != nil {
			return nil, fmt.Errorf("mount %q: %w", prefix, err)
		}
		p := NormalizePath(prefix)
		if p == "" {
			return nil, fmt.Errorf("mount prefix %q is empty", prefix)
		}
		if seen[p] {
			return nil, fmt.Errorf("duplicate mount prefix %q", p)
		}
		seen[p] = true
		table = append(table, Mount{Prefix: p, Engine: engine})
	}

	// Longest prefix first so Resolve picks the most specific mount.
	sort.Slice(table, func(i, j int) bool {
		if len(table[i].Prefix) != len(table[j].Prefix) {
			return len(table[i].Prefix) > len(table[j].Prefix)
		}
		return table[i].Prefix < table[j].Prefix
	})

	return &MountTable{mounts: table}, nil
}

// Resolve maps a logical path to the mount covering it and the path
// remainder relative to that mount. Matching is segment-wise: mount
// "secret" covers "secret" and "secret/x" but never "secrets/x". When
// several mounts match, the longest prefix wins.
func (t *MountTable) Resolve(path string) (Mount, string, error) {
	p := NormalizePath(path)
	for _, mount := range t.mounts {
		if p == mount.Prefix || strings.HasPrefix(p, mount.Prefix+"/") {
			rel := strings.TrimPrefix(p, mount.Prefix)
			rel = strings.TrimPrefix(rel, "/")
			return mount, rel, nil
		}
	}
	return Mount{}, "", &MountNotFoundError{Path: path}
}

// Prefixes returns the configured mount prefixes in lexical order.
func (t *MountTable) Prefixes() []string {
	prefixes := make([]string, len(t.mounts))
	for i, m := range t.mounts {
		prefixes[i] = m.Prefix
	}
	sort.Strings(prefixes)
	return prefixes
}

// NormalizePath trims the slash ambiguity off a logical path. The namespace
// root ("/" or "") normalizes to the empty string.
func NormalizePath(path string) string {
	return strings.Trim(path, "/")
}
