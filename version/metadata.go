package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format identifies a supported metadata file.
type Format string

const (
	FormatCargo     Format = "Cargo.toml"
	FormatPyProject Format = "pyproject.toml"
	FormatPackage   Format = "package.json"
)

// SupportedFormats lists the metadata files searched for, in order.
var SupportedFormats = []Format{FormatCargo, FormatPyProject, FormatPackage}

// MetadataFile is a metadata file found in a project directory.
type MetadataFile struct {
	Format  Format
	Path    string
	Version Version
	content string
}

type cargoManifest struct {
	Package struct {
		Version *string `toml:"version"`
	} `toml:"package"`
}

type pyProject struct {
	Tool struct {
		Poetry struct {
			Version *string `toml:"version"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// FindMetadata reads every supported metadata file in dir.
// Returns ErrNoMetadataFile if none exist.
func FindMetadata(dir string) ([]*MetadataFile, error) {
	var files []*MetadataFile
	for _, format := range SupportedFormats {
		path := filepath.Join(dir, string(format))
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", format, err)
		}

		raw, err := readVersionField(format, data)
		if err != nil {
			return nil, err
		}
		v, err := Parse(raw)
		if err != nil {
			return nil, &InvalidVersionError{Version: raw, File: string(format)}
		}
		files = append(files, &MetadataFile{
			Format:  format,
			Path:    path,
			Version: v,
			content: string(data),
		})
	}

	if len(files) == 0 {
		return nil, ErrNoMetadataFile
	}
	return files, nil
}

// CurrentVersion returns the project version from the first metadata file.
// Disagreeing files are logged; the first one wins.
func CurrentVersion(files []*MetadataFile) (Version, error) {
	if len(files) == 0 {
		return Version{}, ErrNoMetadataFile
	}
	current := files[0].Version
	for _, f := range files[1:] {
		if f.Version != current {
			slog.Warn("metadata files disagree on version",
				"file", f.Format, "version", f.Version.String(),
				"using", files[0].Format, "current", current.String())
		}
	}
	return current, nil
}

// WriteVersion sets the version in every file and returns the paths written.
// Only the version value is replaced; formatting and comments are preserved.
func WriteVersion(files []*MetadataFile, v Version) ([]string, error) {
	var written []string
	for _, f := range files {
		updated, err := replaceVersion(f.Format, f.content, v.String())
		if err != nil {
			return written, err
		}
		if err := os.WriteFile(f.Path, []byte(updated), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.Format, err)
		}
		f.content = updated
		f.Version = v
		written = append(written, f.Path)
	}
	return written, nil
}

func readVersionField(format Format, data []byte) (string, error) {
	invalid := fmt.Errorf("%s: %w", format, ErrInvalidMetadata)

	switch format {
	case FormatCargo:
		var m cargoManifest
		if err := toml.Unmarshal(data, &m); err != nil || m.Package.Version == nil {
			return "", invalid
		}
		return *m.Package.Version, nil

	case FormatPyProject:
		var p pyProject
		if err := toml.Unmarshal(data, &p); err != nil || p.Tool.Poetry.Version == nil {
			return "", invalid
		}
		return *p.Tool.Poetry.Version, nil

	case FormatPackage:
		var pkg map[string]any
		if err := json.Unmarshal(data, &pkg); err != nil {
			return "", invalid
		}
		s, ok := pkg["version"].(string)
		if !ok {
			return "", invalid
		}
		return s, nil
	}
	return "", fmt.Errorf("unsupported metadata format %q", format)
}

var (
	tomlVersionLine = regexp.MustCompile(`^(\s*version\s*=\s*)(["'])[^"']*(["'].*)$`)
	tomlTableLine   = regexp.MustCompile(`^\s*\[\s*([^\[\]]+?)\s*\]\s*(#.*)?$`)
	jsonVersion     = regexp.MustCompile(`("version"\s*:\s*")[^"]*(")`)
)

func replaceVersion(format Format, content, version string) (string, error) {
	switch format {
	case FormatCargo:
		return replaceTOMLVersion(content, "package", version, format)
	case FormatPyProject:
		return replaceTOMLVersion(content, "tool.poetry", version, format)
	case FormatPackage:
		loc := jsonVersion.FindStringSubmatchIndex(content)
		if loc == nil {
			return "", fmt.Errorf("%s: %w", format, ErrInvalidMetadata)
		}
		return content[:loc[3]] + version + content[loc[4]:], nil
	}
	return "", fmt.Errorf("unsupported metadata format %q", format)
}

// replaceTOMLVersion rewrites the first version key inside table.
func replaceTOMLVersion(content, table, version string, format Format) (string, error) {
	lines := strings.Split(content, "\n")
	inTable := false
	for i, line := range lines {
		if m := tomlTableLine.FindStringSubmatch(line); m != nil {
			inTable = m[1] == table
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "[[") {
			inTable = false
			continue
		}
		if !inTable {
			continue
		}
		if m := tomlVersionLine.FindStringSubmatch(line); m != nil {
			lines[i] = m[1] + m[2] + version + m[3]
			return strings.Join(lines, "\n"), nil
		}
	}
	return "", fmt.Errorf("%s: %w", format, ErrInvalidMetadata)
}
