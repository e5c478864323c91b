package manifest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/customs/pkg/errors"
	"github.com/arthur-debert/customs/pkg/logging"
	"github.com/blang/semver"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFiles are the manifest names probed by Find, in order
var DefaultFiles = []string{"manifest.toml", "manifest.yaml", "manifest.yml"}

// Find returns the first manifest file present under root.
// With no names given, DefaultFiles is used.
func Find(root string, names ...string) (string, error) {
	if len(names) == 0 {
		names = DefaultFiles
	}
	for _, name := range names {
		path := filepath.Join(root, name)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Newf(errors.ErrManifestNotFound, "no manifest found in %s (looked for %s)",
		root, strings.Join(names, ", ")).
		WithDetail(errors.DetailPath, root)
}

// Load reads, parses and validates the manifest at path
func Load(path string) (*Manifest, error) {
	logger := logging.GetLogger("manifest").With().Str("path", path).Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound, "%s not found", filepath.Base(path)).
				WithDetail(errors.DetailPath, path)
		}
		return nil, errors.Wrapf(err, errors.ErrIO, "failed to read %s", path).
			WithDetail(errors.DetailPath, path)
	}

	raw, err := decode(path, data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", filepath.Base(path)).
			WithDetail(errors.DetailPath, path)
	}

	m, err := fromDocument(raw)
	if err != nil {
		return nil, err
	}
	m.Path = path

	logger.Debug().
		Str("name", m.Name).
		Str("version", m.Version.String()).
		Int("schema", m.Schema).
		Int("dependencies", len(m.Dependencies)).
		Msg("Manifest loaded")

	return m, nil
}

// decode parses data into a generic document, choosing the format by extension
func decode(path string, data []byte) (map[string]interface{}, error) {
	doc := map[string]interface{}{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc == nil {
			doc = map[string]interface{}{}
		}
	default:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// fromDocument validates a decoded document and builds the Manifest
func fromDocument(doc map[string]interface{}) (*Manifest, error) {
	schema, err := schemaOf(doc)
	if err != nil {
		return nil, err
	}

	for _, field := range requiredFields[schema] {
		if _, ok := doc[field]; !ok {
			return nil, missing(field)
		}
	}

	m := &Manifest{Schema: schema}

	name, err := stringField(doc, FieldName)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, invalid(FieldName, "name cannot be empty")
	}
	if !ValidName(schema, name) {
		return nil, invalid(FieldName, "name %q contains characters outside the allowed set", name)
	}
	m.Name = name

	version, err := stringField(doc, FieldVersion)
	if err != nil {
		return nil, err
	}
	if version == "" {
		return nil, invalid(FieldVersion, "version cannot be empty")
	}
	parsed, err := semver.Parse(version)
	if err != nil {
		return nil, invalid(FieldVersion, "version %q is not a semantic version (MAJOR.MINOR.PATCH)", version).
			WithDetail("reason", err.Error())
	}
	m.Version = parsed

	if _, ok := doc[FieldTarget]; ok {
		target, err := stringField(doc, FieldTarget)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(target) == "" {
			return nil, invalid(FieldTarget, "target cannot be empty")
		}
		m.Target = target
	}

	if _, ok := doc[FieldDescription]; ok {
		if m.Description, err = stringField(doc, FieldDescription); err != nil {
			return nil, err
		}
		if schema >= SchemaV2 && strings.TrimSpace(m.Description) == "" {
			return nil, missing(FieldDescription)
		}
	}

	if _, ok := doc[FieldAuthors]; ok {
		if m.Authors, err = stringList(doc, FieldAuthors); err != nil {
			return nil, err
		}
		if schema >= SchemaV2 && len(m.Authors) == 0 {
			return nil, missing(FieldAuthors)
		}
	}

	if m.Dependencies, err = dependencies(doc); err != nil {
		return nil, err
	}

	return m, nil
}

func schemaOf(doc map[string]interface{}) (int, error) {
	value, ok := doc[FieldSchema]
	if !ok {
		return DefaultSchema, nil
	}
	var schema int
	switch v := value.(type) {
	case int:
		schema = v
	case int64:
		schema = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, invalid(FieldSchema, "schema must be an integer")
		}
		schema = int(v)
	default:
		return 0, invalid(FieldSchema, "schema must be an integer")
	}
	if _, known := requiredFields[schema]; !known {
		return 0, invalid(FieldSchema, "unsupported manifest schema %d", schema)
	}
	return schema, nil
}

func dependencies(doc map[string]interface{}) (map[string]Requirement, error) {
	deps := map[string]Requirement{}
	value, ok := doc[FieldDependencies]
	if !ok || value == nil {
		return deps, nil
	}
	table, ok := value.(map[string]interface{})
	if !ok {
		return nil, invalid(FieldDependencies, "dependencies must be a table of name = requirement")
	}
	for name, v := range table {
		field := FieldDependencies + "." + name
		expr, ok := v.(string)
		if !ok {
			return nil, invalid(field, "requirement for %q must be a string", name)
		}
		rng, err := semver.ParseRange(expr)
		if err != nil {
			return nil, invalid(field, "requirement %q for %q is not valid", expr, name).
				WithDetail("reason", err.Error())
		}
		deps[name] = Requirement{Expr: expr, Range: rng}
	}
	return deps, nil
}

func stringField(doc map[string]interface{}, field string) (string, error) {
	switch v := doc[field].(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", invalid(field, "%s must be a string", field)
	}
}

func stringList(doc map[string]interface{}, field string) ([]string, error) {
	switch v := doc[field].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(field, "%s must be a list of strings", field)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(field, "%s must be a list of strings", field)
	}
}

func missing(field string) *errors.CustomsError {
	return errors.Newf(errors.ErrManifestFieldMissing, "missing required field %q", field).
		WithDetail(errors.DetailField, field)
}

func invalid(field, format string, args ...interface{}) *errors.CustomsError {
	return errors.Newf(errors.ErrManifestFieldInvalid, format, args...).
		WithDetail(errors.DetailField, field)
}
