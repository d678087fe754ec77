package gemfile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bundleup/bundleup/infrastructure/gemfile"
)

func TestRebuild(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		gem      string
		target   string
		expected string
	}{
		{
			name:     "should replace an existing constraint",
			line:     `gem "rails", "~> 6.1"`,
			gem:      "rails",
			target:   "7.0.4",
			expected: `gem "rails", "~> 7.0.4"`,
		},
		{
			name:     "should add a constraint to an unpinned declaration",
			line:     `gem "rails"`,
			gem:      "rails",
			target:   "7.0.4",
			expected: `gem "rails", "~> 7.0.4"`,
		},
		{
			name:     "should preserve leading whitespace",
			line:     `    gem "puma", "~> 5.0"`,
			gem:      "puma",
			target:   "6.0.0",
			expected: `    gem "puma", "~> 6.0.0"`,
		},
		{
			name:     "should preserve single-quote style",
			line:     `gem 'nokogiri', '~> 1.13'`,
			gem:      "nokogiri",
			target:   "1.14.2",
			expected: `gem 'nokogiri', '~> 1.14.2'`,
		},
		{
			name:     "should preserve trailing options",
			line:     `  gem "foo", "~> 1.0", require: false`,
			gem:      "foo",
			target:   "2.0",
			expected: `  gem "foo", "~> 2.0", require: false`,
		},
		{
			name:     "should preserve a trailing comment",
			line:     `gem "rake", "= 13.0" # task runner`,
			gem:      "rake",
			target:   "13.0.6",
			expected: `gem "rake", "~> 13.0.6" # task runner`,
		},
		{
			name:     "should replace an exact constraint with a pessimistic one",
			line:     `gem "thor", "1.2.1"`,
			gem:      "thor",
			target:   "1.2.2",
			expected: `gem "thor", "~> 1.2.2"`,
		},
		{
			name:     "should handle names with regex-special characters",
			line:     `gem "c++-bindings", "~> 1.0"`,
			gem:      "c++-bindings",
			target:   "2.0",
			expected: `gem "c++-bindings", "~> 2.0"`,
		},
		{
			name:     "should leave a non-matching line untouched",
			line:     `# frozen_string_literal: true`,
			gem:      "rails",
			target:   "7.0.4",
			expected: `# frozen_string_literal: true`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			line := tt.line

			// when
			result := gemfile.Rebuild(line, tt.gem, tt.target)

			// then
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestRebuild_Idempotence(t *testing.T) {
	t.Parallel()

	t.Run("should produce identical output when already at the target", func(t *testing.T) {
		t.Parallel()

		// given
		line := `  gem "sidekiq", "~> 6.5.8", require: false # background jobs`

		// when
		once := gemfile.Rebuild(line, "sidekiq", "6.5.8")
		twice := gemfile.Rebuild(once, "sidekiq", "6.5.8")

		// then
		assert.Equal(t, line, once)
		assert.Equal(t, once, twice)
	})
}
