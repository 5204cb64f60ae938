package app

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfo_WithSettings(t *testing.T) {
	t.Parallel()

	settings := []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: "0123456789abcdef0123"},
		{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
	}

	tests := []struct {
		name string
		in   BuildInfo
		want BuildInfo
	}{
		{
			name: "fills unknown values",
			in:   BuildInfo{Version: "dev", Commit: "unknown", BuildTime: "unknown"},
			want: BuildInfo{Version: "dev", Commit: "0123456789ab", BuildTime: "2026-01-02T03:04:05Z"},
		},
		{
			name: "keeps ldflags values",
			in:   BuildInfo{Version: "1.2.0", Commit: "feedbee", BuildTime: "2026-05-01"},
			want: BuildInfo{Version: "1.2.0", Commit: "feedbee", BuildTime: "2026-05-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.withSettings(settings))
		})
	}
}

func TestBuildInfo_String(t *testing.T) {
	t.Parallel()

	b := BuildInfo{Version: "1.2.0", Commit: "feedbee", BuildTime: "2026-05-01", GoVersion: "go1.25.0"}
	assert.Equal(t, "1.2.0 (commit: feedbee, built: 2026-05-01)", b.String())
}

func TestBuild_UsesRuntimeGoVersion(t *testing.T) {
	t.Parallel()

	b := Build()
	assert.Equal(t, Version, b.Version)
	assert.NotEmpty(t, b.GoVersion)
}
