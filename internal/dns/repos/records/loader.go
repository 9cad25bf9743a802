package records

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"golang.org/x/net/idna"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
	"github.com/hvdkamp/dnswire/internal/dns/repos/rrdata"
)

// LoadDirectory walks dir, parsing every supported record file (YAML, JSON,
// TOML) into compiled records. Unsupported extensions are skipped silently;
// a file that fails to parse aborts the whole load.
func LoadDirectory(dir string, defaultTTL uint32) ([]Record, error) {
	var all []Record
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		records, err := loadFile(path, defaultTTL)
		if err != nil {
			return fmt.Errorf("error parsing record file %s: %w", path, err)
		}
		all = append(all, records...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return all, nil
}

// loadFile parses one record file. The expected shape is a top-level
// "origin" string plus one map per owner name:
//
//	origin: example.com
//	www:
//	  A: 192.0.2.10
//	"@":
//	  NS: [ns1.example.com, ns2.example.com]
func loadFile(path string, defaultTTL uint32) ([]Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return nil, nil // unsupported file type
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("failed to load record file: %w", err)
	}

	origin := k.String("origin")
	if origin == "" {
		return nil, fmt.Errorf("record file missing 'origin'")
	}
	origin = canonicalOwner(origin)

	var records []Record
	for name, raw := range k.Raw() {
		if name == "origin" {
			continue
		}
		rawMap, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		fqdn := canonicalOwner(expandName(name, origin))
		for rrType, val := range rawMap {
			values := toStringValues(val)
			if len(values) == 0 {
				continue
			}
			recs, err := buildRecords(fqdn, rrType, values, defaultTTL)
			if err != nil {
				return nil, fmt.Errorf("invalid record: %w", err)
			}
			records = append(records, recs...)
		}
	}
	return records, nil
}

// buildRecords compiles each text value into one Record.
func buildRecords(fqdn, rrType string, values []string, defaultTTL uint32) ([]Record, error) {
	rType := domain.RRTypeFromString(strings.ToUpper(rrType))
	if rType == 0 {
		return nil, fmt.Errorf("unknown record type %q for %s", rrType, fqdn)
	}
	var records []Record
	for _, v := range values {
		data, err := rrdata.Encode(rType, v)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Name:  fqdn,
			Type:  rType,
			Class: domain.RRClassIN,
			TTL:   defaultTTL,
			Data:  data,
			Text:  v,
		})
	}
	return records, nil
}

// expandName turns a record-file label into a fully qualified name,
// expanding '@' to the origin and appending the origin to relative names.
func expandName(label, origin string) string {
	if label == "@" {
		return origin
	}
	if strings.HasSuffix(label, ".") {
		return label
	}
	return label + "." + origin
}

// canonicalOwner normalizes an owner name for store keys, converting
// internationalized names to their punycode A-label form. Names that do not
// survive the IDNA mapping are kept as typed.
func canonicalOwner(name string) string {
	name = domain.CanonicalName(name)
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return name
	}
	return ascii
}

// toStringValues converts a raw koanf-parsed value (string or []any of
// strings) into a slice of non-empty strings, skipping empty or non-string
// elements.
func toStringValues(val any) []string {
	switch v := val.(type) {
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil
		}
		return []string{s}
	case []any:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			s, ok := elem.(string)
			if !ok {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			out = append(out, s)
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}
