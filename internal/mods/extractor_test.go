package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunaflsh/external-mods-manager/pkg/transport"
)

func TestSplitRepoPath(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
		wantErr  bool
	}{
		{
			name:     "https url",
			source:   "https://github.com/sakura-ryoko/itemscroller",
			expected: "sakura-ryoko/itemscroller",
		},
		{
			name:     "http url",
			source:   "http://github.com/owner/repo",
			expected: "owner/repo",
		},
		{
			name:     "no scheme",
			source:   "github.com/owner/repo",
			expected: "owner/repo",
		},
		{
			name:     "trailing git suffix",
			source:   "https://github.com/owner/repo.git",
			expected: "owner/repo",
		},
		{
			name:     "trailing slash",
			source:   "https://github.com/owner/repo/",
			expected: "owner/repo",
		},
		{
			name:    "missing repo",
			source:  "https://github.com/owner",
			wantErr: true,
		},
		{
			name:    "extra path segment",
			source:  "https://github.com/owner/repo/releases",
			wantErr: true,
		},
		{
			name:    "empty string",
			source:  "",
			wantErr: true,
		},
		{
			name:    "bare name",
			source:  "itemscroller",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := splitRepoPath(tt.source)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadSource)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, repo)
		})
	}
}

func TestNewExtractorSelectsVariant(t *testing.T) {
	client := transport.NewMockHTTPFetcher()

	ex, err := NewExtractor("itemscroller", "https://github.com/sakura-ryoko/itemscroller", client, "")
	require.NoError(t, err)
	assert.IsType(t, &releasesExtractor{}, ex)
	assert.Equal(t, "itemscroller", ex.Name())

	ex, err = NewExtractor("SeedcrackerX", "https://github.com/19MisterX98/SeedcrackerX", client, "")
	require.NoError(t, err)
	assert.IsType(t, &readmeExtractor{}, ex)
	assert.Equal(t, "SeedcrackerX", ex.Name())
}

func TestNewExtractorRejectsBadSource(t *testing.T) {
	client := transport.NewMockHTTPFetcher()

	_, err := NewExtractor("itemscroller", "not-a-repo", client, "")
	assert.ErrorIs(t, err, ErrBadSource)
}
