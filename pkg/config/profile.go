package config

import (
	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

const (
	// ProfilePath is the default path to the sync profile.
	ProfilePath = "~/.sftp-sync.yaml"

	// DefaultPort is the SSH port used when the profile and flags don't
	// specify one.
	DefaultPort = 22

	// InitialProfileVersion is the first version of the sync profile.
	// Profiles that do not specify a version will default to this version.
	InitialProfileVersion = "v1alpha1"

	// SupportedProfileVersion is the supported version of the sync profile
	// for the current binary.
	SupportedProfileVersion = "v1alpha1"
)

// Profile contains the connection and mirroring settings for a host. Every
// field can be overridden from the command line, so a profile only needs the
// settings the user doesn't want to retype.
type Profile struct {
	Version         string   `json:"version,omitempty"`
	Host            string   `json:"host"`
	Port            int      `json:"port,omitempty"`
	Username        string   `json:"username"`
	LocalDirectory  string   `json:"localDirectory"`
	RemoteDirectory string   `json:"remoteDirectory"`
	Exclude         []string `json:"exclude,omitempty"`
}

func (p Profile) getVersion() string {
	return p.Version
}

// Validate checks that the settings required to start a sync are present.
// It's called on the merged flag/profile values, not on the raw file.
func (p Profile) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"host", p.Host},
		{"username", p.Username},
		{"local-directory", p.LocalDirectory},
		{"remote-directory", p.RemoteDirectory},
	}
	for _, req := range required {
		if req.value == "" {
			return errors.MissingFieldError{Field: req.field}
		}
	}
	return nil
}

// Merge returns p with every field that's set in override replacing p's
// value. It's how command line flags take precedence over the profile file.
func (p Profile) Merge(override Profile) Profile {
	if override.Host != "" {
		p.Host = override.Host
	}
	if override.Port != 0 {
		p.Port = override.Port
	}
	if override.Username != "" {
		p.Username = override.Username
	}
	if override.LocalDirectory != "" {
		p.LocalDirectory = override.LocalDirectory
	}
	if override.RemoteDirectory != "" {
		p.RemoteDirectory = override.RemoteDirectory
	}
	if len(override.Exclude) != 0 {
		p.Exclude = override.Exclude
	}
	return p
}

// homedirExpand will be overridden in mock tests
var homedirExpand = homedir.Expand

// ParseProfile attempts to parse the Profile stored in the default path.
// A missing file surfaces as errors.FileNotFound so callers can fall back
// to flag-only operation.
func ParseProfile() (Profile, error) {
	path, err := GetProfilePath()
	if err != nil {
		return Profile{}, errors.WithContext(err, "expand profile path")
	}

	profile := Profile{Version: InitialProfileVersion}
	if err := parseConfig(path, &profile, SupportedProfileVersion); err != nil {
		if _, ok := err.(errors.FileNotFound); ok {
			return Profile{}, err
		}
		return Profile{}, errors.WithContext(err, "parse")
	}

	profile.LocalDirectory, err = homedirExpand(profile.LocalDirectory)
	if err != nil {
		return Profile{}, errors.WithContext(err, "expand local directory")
	}

	if profile.Port == 0 {
		profile.Port = DefaultPort
	}
	return profile, nil
}

// WriteProfile writes the given profile to the default path.
func WriteProfile(profile Profile) error {
	profile.Version = SupportedProfileVersion
	path, err := GetProfilePath()
	if err != nil {
		return errors.WithContext(err, "expand profile path")
	}

	yamlBytes, err := yaml.Marshal(profile)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0600); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetProfilePath returns the expanded path to the sync profile, so it can be
// directly passed to file operations.
func GetProfilePath() (string, error) {
	return homedirExpand(ProfilePath)
}
