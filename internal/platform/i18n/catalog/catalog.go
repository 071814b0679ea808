// Package catalog loads locale message catalogs and registers them with
// x/text. Keys follow a "namespace.id.field" scheme, one namespace per
// file, so content packages can reference names by key only.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseLocale is the canonical source locale; every other locale falls
// back to it key by key.
const BaseLocale = "en-US"

//go:embed locales/*/*.yaml
var embeddedFS embed.FS

// Bundle holds every loaded locale keyed by locale identifier.
type Bundle struct {
	locales map[string]*localeCatalog
}

type localeCatalog struct {
	messages   map[string]string
	namespaces map[string]map[string]string
}

var defaultBundle = mustLoadEmbedded()

// Default returns the process-wide embedded bundle.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs embedded in this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedFS)
}

// LoadFromFS loads every locales/<locale>/<namespace>.yaml file from
// the given filesystem.
func LoadFromFS(catalogFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(catalogFS, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*localeCatalog{}}
	for _, filePath := range paths {
		data, err := fs.ReadFile(catalogFS, filePath)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", filePath, err)
		}
		locale := path.Base(path.Dir(filePath))
		namespace := strings.TrimSuffix(path.Base(filePath), ".yaml")
		if err := bundle.addFile(locale, namespace, data); err != nil {
			return nil, fmt.Errorf("catalog %s: %w", filePath, err)
		}
	}

	if _, ok := bundle.locales[BaseLocale]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func (b *Bundle) addFile(locale, namespace string, data []byte) error {
	declaredLocale, declaredNS, messages, err := parseFile(data)
	if err != nil {
		return err
	}
	if declaredLocale != locale {
		return fmt.Errorf("locale %q must match directory %q", declaredLocale, locale)
	}
	if declaredNS != namespace {
		return fmt.Errorf("namespace %q must match filename %q", declaredNS, namespace)
	}

	cat, ok := b.locales[locale]
	if !ok {
		cat = &localeCatalog{
			messages:   map[string]string{},
			namespaces: map[string]map[string]string{},
		}
		b.locales[locale] = cat
	}
	if _, exists := cat.namespaces[namespace]; exists {
		return fmt.Errorf("namespace %q already defined for locale %q", namespace, locale)
	}

	nsMessages := make(map[string]string, len(messages))
	for key, value := range messages {
		if !strings.HasPrefix(key, namespace+".") {
			return fmt.Errorf("key %q must start with %q", key, namespace+".")
		}
		if _, exists := cat.messages[key]; exists {
			return fmt.Errorf("duplicate key %q in locale %q", key, locale)
		}
		cat.messages[key] = value
		nsMessages[key] = value
	}
	cat.namespaces[namespace] = nsMessages
	return nil
}

// Register installs every message into the x/text default catalog so
// message.Printer resolves them by locale tag.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if base, confidence := tag.Base(); confidence != language.No {
			if baseTag, err := language.Parse(base.String()); err == nil && baseTag != tag {
				tags = append(tags, baseTag)
			}
		}

		messages := b.locales[locale].messages
		keys := make([]string, 0, len(messages))
		for key := range messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, t := range tags {
				message.SetString(t, key, messages[key])
			}
		}
	}
	return nil
}

// HasLocale reports whether the locale exists in this bundle.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales returns all loaded locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Message resolves one key for a locale, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil || strings.TrimSpace(key) == "" {
		return "", false
	}
	if cat, ok := b.locales[strings.TrimSpace(locale)]; ok {
		if value, exists := cat.messages[key]; exists {
			return value, true
		}
	}
	if cat, ok := b.locales[BaseLocale]; ok {
		value, exists := cat.messages[key]
		return value, exists
	}
	return "", false
}

// Namespaces returns sorted namespace names for a locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	cat, ok := b.locales[strings.TrimSpace(locale)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(cat.namespaces))
	for namespace := range cat.namespaces {
		out = append(out, namespace)
	}
	sort.Strings(out)
	return out
}

// NamespaceMessages returns a copy of one namespace's messages for a
// locale, falling back to BaseLocale when the locale lacks it.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}
	source := map[string]string{}
	if cat, ok := b.locales[strings.TrimSpace(locale)]; ok {
		source = cat.namespaces[namespace]
	}
	if len(source) == 0 {
		if cat, ok := b.locales[BaseLocale]; ok {
			source = cat.namespaces[namespace]
		}
	}
	for key, value := range source {
		out[key] = value
	}
	return out
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}

// parseFile reads the minimal catalog format: a quoted locale line, a
// quoted namespace line, then a messages block of quoted key/value
// pairs. Full YAML is deliberately out of scope.
func parseFile(data []byte) (locale, namespace string, messages map[string]string, err error) {
	messages = map[string]string{}
	inMessages := false

	for _, rawLine := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "locale:"):
			locale, err = unquote(strings.TrimPrefix(line, "locale:"))
			if err != nil {
				return "", "", nil, fmt.Errorf("parse locale: %w", err)
			}
		case strings.HasPrefix(line, "namespace:"):
			namespace, err = unquote(strings.TrimPrefix(line, "namespace:"))
			if err != nil {
				return "", "", nil, fmt.Errorf("parse namespace: %w", err)
			}
		case line == "messages:":
			inMessages = true
		default:
			if !inMessages {
				return "", "", nil, fmt.Errorf("unexpected line %q", line)
			}
			key, value, err := parseEntry(line)
			if err != nil {
				return "", "", nil, fmt.Errorf("parse entry %q: %w", line, err)
			}
			messages[key] = value
		}
	}

	if locale == "" {
		return "", "", nil, fmt.Errorf("missing locale")
	}
	if namespace == "" {
		return "", "", nil, fmt.Errorf("missing namespace")
	}
	if len(messages) == 0 {
		return "", "", nil, fmt.Errorf("missing messages")
	}
	return locale, namespace, messages, nil
}

func parseEntry(line string) (string, string, error) {
	keyToken, rest, err := takeQuoted(line)
	if err != nil {
		return "", "", err
	}
	key, err := strconv.Unquote(keyToken)
	if err != nil {
		return "", "", fmt.Errorf("unquote key: %w", err)
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	value, err := unquote(strings.TrimPrefix(rest, ":"))
	if err != nil {
		return "", "", fmt.Errorf("unquote value: %w", err)
	}
	return key, value, nil
}

func unquote(token string) (string, error) {
	return strconv.Unquote(strings.TrimSpace(token))
}

// takeQuoted splits off the leading quoted token, honoring escapes.
func takeQuoted(line string) (string, string, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "\"") {
		return "", "", fmt.Errorf("expected quoted token")
	}
	escaped := false
	for i := 1; i < len(trimmed); i++ {
		switch {
		case escaped:
			escaped = false
		case trimmed[i] == '\\':
			escaped = true
		case trimmed[i] == '"':
			return trimmed[:i+1], trimmed[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("unterminated quoted token")
}
