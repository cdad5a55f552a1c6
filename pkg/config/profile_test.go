package config

import (
	"testing"

	"github.com/ghodss/yaml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClasicRando/sftp-sync/pkg/errors"
)

const testProfilePath = "/home/test/.sftp-sync.yaml"

func mockHomedir(t *testing.T) {
	oldExpand := homedirExpand
	homedirExpand = func(path string) (string, error) {
		if path == ProfilePath {
			return testProfilePath, nil
		}
		return path, nil
	}
	t.Cleanup(func() { homedirExpand = oldExpand })
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name       string
		input      []byte
		expProfile Profile
		expError   error
	}{
		{
			name: "EmptyVersion",
			input: mustMarshal(t, Profile{
				Host:     "files.example.com",
				Username: "gus",
			}),
			expProfile: Profile{
				Version:  InitialProfileVersion,
				Host:     "files.example.com",
				Username: "gus",
				Port:     DefaultPort,
			},
		},
		{
			name: "FullProfile",
			input: mustMarshal(t, Profile{
				Version:         SupportedProfileVersion,
				Host:            "files.example.com",
				Port:            2222,
				Username:        "gus",
				LocalDirectory:  "/mirror",
				RemoteDirectory: "/srv/data",
				Exclude:         []string{".git", "node_modules"},
			}),
			expProfile: Profile{
				Version:         SupportedProfileVersion,
				Host:            "files.example.com",
				Port:            2222,
				Username:        "gus",
				LocalDirectory:  "/mirror",
				RemoteDirectory: "/srv/data",
				Exclude:         []string{".git", "node_modules"},
			},
		},
		{
			name: "IncorrectVersion",
			input: mustMarshal(t, Profile{
				Version: "incorrect_version",
				Host:    "files.example.com",
			}),
			expError: errors.WithContext(incompatibleVersionError{
				path:   testProfilePath,
				exp:    SupportedProfileVersion,
				actual: "incorrect_version",
			}, "parse"),
		},
		{
			name:  "ExtraFields",
			input: []byte("version: v1alpha1\nextra: fields"),
			expError: errors.WithContext(
				errors.NewFriendlyError(parseConfigErrTemplate, testProfilePath,
					errors.New("error unmarshaling JSON: while decoding JSON: "+
						`json: unknown field "extra"`)),
				"parse"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			fs = afero.NewMemMapFs()
			mockHomedir(t)
			require.NoError(t, afero.WriteFile(fs, testProfilePath, test.input, 0600))

			profile, err := ParseProfile()
			if test.expError != nil {
				assert.Equal(t, test.expError, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expProfile, profile)
		})
	}
}

func TestParseProfileMissingFile(t *testing.T) {
	fs = afero.NewMemMapFs()
	mockHomedir(t)

	_, err := ParseProfile()
	assert.Equal(t, errors.FileNotFound{Path: testProfilePath}, err)
}

func TestWriteProfileRoundTrips(t *testing.T) {
	fs = afero.NewMemMapFs()
	mockHomedir(t)

	profile := Profile{
		Host:            "files.example.com",
		Port:            2222,
		Username:        "gus",
		LocalDirectory:  "/mirror",
		RemoteDirectory: "/srv/data",
		Exclude:         []string{"skip_me"},
	}
	require.NoError(t, WriteProfile(profile))

	parsed, err := ParseProfile()
	require.NoError(t, err)

	profile.Version = SupportedProfileVersion
	assert.Equal(t, profile, parsed)
}

func TestProfileMerge(t *testing.T) {
	base := Profile{
		Host:            "files.example.com",
		Port:            22,
		Username:        "gus",
		LocalDirectory:  "/mirror",
		RemoteDirectory: "/srv/data",
		Exclude:         []string{".git"},
	}

	tests := []struct {
		name     string
		override Profile
		exp      Profile
	}{
		{
			name:     "NoOverrides",
			override: Profile{},
			exp:      base,
		},
		{
			name:     "OverrideHostAndPort",
			override: Profile{Host: "other.example.com", Port: 2222},
			exp: Profile{
				Host:            "other.example.com",
				Port:            2222,
				Username:        "gus",
				LocalDirectory:  "/mirror",
				RemoteDirectory: "/srv/data",
				Exclude:         []string{".git"},
			},
		},
		{
			name:     "OverrideExclude",
			override: Profile{Exclude: []string{"node_modules"}},
			exp: Profile{
				Host:            "files.example.com",
				Port:            22,
				Username:        "gus",
				LocalDirectory:  "/mirror",
				RemoteDirectory: "/srv/data",
				Exclude:         []string{"node_modules"},
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.exp, base.Merge(test.override))
		})
	}
}

func TestProfileValidate(t *testing.T) {
	valid := Profile{
		Host:            "files.example.com",
		Username:        "gus",
		LocalDirectory:  "/mirror",
		RemoteDirectory: "/srv/data",
	}
	assert.NoError(t, valid.Validate())

	missingHost := valid
	missingHost.Host = ""
	assert.Equal(t, errors.MissingFieldError{Field: "host"}, missingHost.Validate())

	missingLocal := valid
	missingLocal.LocalDirectory = ""
	assert.Equal(t, errors.MissingFieldError{Field: "local-directory"},
		missingLocal.Validate())
}

func mustMarshal(t *testing.T, profile Profile) []byte {
	yamlBytes, err := yaml.Marshal(profile)
	require.NoError(t, err)
	return yamlBytes
}
