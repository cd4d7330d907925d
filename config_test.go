package backupkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    Config
	}{
		{
			name:    "default values",
			envVars: map[string]string{},
			want: Config{
				Destination:       "directory",
				ChecksumAlgorithm: "xxhash",
				LogLevel:          "info",
			},
		},
		{
			name: "directory configuration",
			envVars: map[string]string{
				"BEAVER_BACKUPKIT_DIRECTORY":          "/backups",
				"BEAVER_BACKUPKIT_READ_ONLY":          "true",
				"BEAVER_BACKUPKIT_CHECKSUM_ALGORITHM": "sha256",
				"BEAVER_BACKUPKIT_LOG_LEVEL":          "debug",
			},
			want: Config{
				Destination:       "directory",
				Directory:         "/backups",
				ReadOnly:          true,
				ChecksumAlgorithm: "sha256",
				LogLevel:          "debug",
			},
		},
		{
			name: "exclude filter configuration",
			envVars: map[string]string{
				"BEAVER_BACKUPKIT_EXCLUDE_SOURCE":      "public_files",
				"BEAVER_BACKUPKIT_EXCLUDE_SOURCE_NAME": "Public Files",
				"BEAVER_BACKUPKIT_EXCLUDE_FILEPATHS":   "*.sql,cache/*",
			},
			want: Config{
				Destination:       "directory",
				ChecksumAlgorithm: "xxhash",
				LogLevel:          "info",
				ExcludeSource:     "public_files",
				ExcludeSourceName: "Public Files",
				ExcludeFilepaths:  "*.sql,cache/*",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := GetConfig()
			require.NoError(t, err)
			assert.Equal(t, tt.want, *cfg)
		})
	}
}

func TestConfigExcludePatterns(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "empty", value: "", want: nil},
		{name: "single", value: "*.sql", want: []string{"*.sql"}},
		{name: "keeps order and trims", value: " cache/* , *.sql ,, tmp/? ", want: []string{"cache/*", "*.sql", "tmp/?"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ExcludeFilepaths: tt.value}
			assert.Equal(t, tt.want, cfg.ExcludePatterns())
		})
	}
}
