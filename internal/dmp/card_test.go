package dmp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const validFrontMatter = `name: demo
version: 1.2.3
decision_model_package_version: "0.1"
problem_class: knapsack
license: MIT
authors:
  - name: Ada
    email: ada@example.com
tags:
  - demo
`

func card(frontMatter string) string {
	return "---\n" + frontMatter + "---\n\n# Demo\n\nFree text.\n"
}

func TestParseCardValid(t *testing.T) {
	t.Parallel()

	parsed, problems := ParseCard(card(validFrontMatter))
	require.Empty(t, problems)
	require.Equal(t, "demo", parsed.Name)
	require.Equal(t, "1.2.3", parsed.Version)
	require.Equal(t, Version, parsed.DecisionModelPackageVersion)
	require.Equal(t, []Author{{Name: "Ada", Email: "ada@example.com"}}, parsed.Authors)
	require.Equal(t, []string{"demo"}, parsed.Tags)
	require.Equal(t, "# Demo\n\nFree text.", parsed.Body)
}

func TestParseCardAlternateTerminator(t *testing.T) {
	t.Parallel()

	_, problems := ParseCard("\n---\n" + validFrontMatter + "...\nbody\n")
	require.Empty(t, problems)
}

func TestParseCardFrontMatterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"no front matter", "# Title\n", "decision_card.md: missing YAML front matter"},
		{"empty file", "", "decision_card.md: missing YAML front matter"},
		{"unterminated", "---\nname: demo\n", "decision_card.md: incomplete YAML front matter"},
		{"list front matter", "---\n- a\n- b\n---\n", "decision_card.md: YAML front matter must be a mapping"},
		{"empty front matter", "---\n---\n", "decision_card.md: YAML front matter must be a mapping"},
		{"bad yaml", "---\nname: [demo\n---\n", "decision_card.md: front matter is not valid YAML"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parsed, problems := ParseCard(tt.text)
			require.Nil(t, parsed)
			require.Len(t, problems, 1)
			require.True(t, strings.HasPrefix(problems[0], tt.want), problems[0])
		})
	}
}

func TestParseCardFieldErrors(t *testing.T) {
	t.Parallel()

	replace := func(old, new string) string {
		return card(strings.Replace(validFrontMatter, old, new, 1))
	}

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "missing tags only",
			text: replace("tags:\n  - demo\n", ""),
			want: []string{"decision_card.md: missing required field: tags"},
		},
		{
			name: "null field counts as missing",
			text: replace("license: MIT", "license: null"),
			want: []string{"decision_card.md: missing required field: license"},
		},
		{
			name: "unquoted package version",
			text: replace(`decision_model_package_version: "0.1"`, "decision_model_package_version: 0.1"),
			want: []string{"decision_card.md: decision_model_package_version must be '0.1'"},
		},
		{
			name: "wrong package version",
			text: replace(`decision_model_package_version: "0.1"`, `decision_model_package_version: "0.2"`),
			want: []string{"decision_card.md: decision_model_package_version must be '0.1'"},
		},
		{
			name: "non-semver version",
			text: replace("version: 1.2.3", "version: v1.2"),
			want: []string{"decision_card.md: version must be a semantic version like 1.0.0, got v1.2"},
		},
		{
			name: "empty authors",
			text: replace("authors:\n  - name: Ada\n    email: ada@example.com\n", "authors: []\n"),
			want: []string{"decision_card.md: authors must be a non-empty list"},
		},
		{
			name: "author entries",
			text: replace("  - name: Ada\n", "  - Ada\n  - name: \"\"\n  - name: Bob\n"),
			want: []string{
				"decision_card.md: authors[1] must be a mapping with a name",
				"decision_card.md: authors[2].name must be a non-empty string",
			},
		},
		{
			name: "blank tag",
			text: replace("  - demo\n", "  - demo\n  - \"  \"\n"),
			want: []string{"decision_card.md: tags[2] must be a non-empty string"},
		},
		{
			name: "several missing fields",
			text: card("name: demo\n"),
			want: []string{
				"decision_card.md: missing required field: version",
				"decision_card.md: missing required field: decision_model_package_version",
				"decision_card.md: missing required field: problem_class",
				"decision_card.md: missing required field: license",
				"decision_card.md: missing required field: authors",
				"decision_card.md: missing required field: tags",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, problems := ParseCard(tt.text)
			require.Equal(t, tt.want, problems)
		})
	}
}

func TestSemverPattern(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"0.0.1", "1.2.3", "1.0.0-rc.1", "2.0.0+build.5"} {
		require.True(t, semverPattern.MatchString(version), version)
	}
	for _, version := range []string{"1.2", "v1.2.3", "1.2.3.4", "1.2.3-", ""} {
		require.False(t, semverPattern.MatchString(version), version)
	}
}
