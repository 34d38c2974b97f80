package config

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile describes one dataset source the web server should ingest at
// startup: an INI section name plus the file it loads.
type Profile struct {
	Name string
	// Path of the source file.
	Path string
	// Format is "csv" or "xlsx"; inferred from the path extension when
	// empty.
	Format string
	// Sheet selects an XLSX sheet; empty means the first sheet.
	Sheet string
	// CityMarker overrides the normalizer's marker token.
	CityMarker string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, name string) (Profile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]Profile, error) {
	var profiles []Profile
	for _, section := range cr.cfg.Sections() {
		if section.Name() == ini.DefaultSection || len(section.Keys()) == 0 {
			continue
		}
		p, err := profileFromSection(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (Profile, error) {
	section, err := cr.cfg.GetSection(name)
	if err != nil {
		return Profile{}, fmt.Errorf("profile %s not found", name)
	}
	return profileFromSection(section)
}

func profileFromSection(section *ini.Section) (Profile, error) {
	path := section.Key("path").String()
	if path == "" {
		return Profile{}, fmt.Errorf("profile %s has no path", section.Name())
	}

	format := strings.ToLower(section.Key("format").String())
	if format == "" {
		switch {
		case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
			format = "xlsx"
		default:
			format = "csv"
		}
	}
	if format != "csv" && format != "xlsx" {
		return Profile{}, fmt.Errorf("profile %s has unsupported format %q", section.Name(), format)
	}

	return Profile{
		Name:       section.Name(),
		Path:       path,
		Format:     format,
		Sheet:      section.Key("sheet").String(),
		CityMarker: section.Key("city_marker").String(),
	}, nil
}
