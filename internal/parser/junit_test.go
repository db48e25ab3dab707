package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jsplit/internal/domain"
)

const searchSuite = `
<?xml version="1.0" encoding="UTF-8"?>
<testsuite name="scenario.SearchTest" tests="3" skipped="0" failures="0" errors="0" timestamp="2024-10-18T20:40:34" hostname="pudlo" time="39.218">
    <properties/>
    <testcase name="testSearchQuery" classname="scenario.SearchTest" time="16.274"/>
    <testcase name="testSearchRegex" classname="scenario.SearchTest" time="10.609"/>
    <testcase name="testSearchString" classname="scenario.SearchTest" time="11.391"/>
    <system-out><![CDATA[]]></system-out>
    <system-err><![CDATA[]]></system-err>
</testsuite>`

func TestJUnitParser_ParseFile(t *testing.T) {
	p := NewJUnitParser()
	dir := t.TempDir()

	t.Run("parses a testsuite report", func(t *testing.T) {
		path := filepath.Join(dir, "TEST-search.xml")
		require.NoError(t, os.WriteFile(path, []byte(strings.TrimSpace(searchSuite)), 0644))

		suites, err := p.ParseFile(path)
		require.NoError(t, err)
		require.Len(t, suites, 1)

		s := suites[0]
		assert.Equal(t, "scenario.SearchTest", s.Name)
		assert.Equal(t, 39.218, s.Duration)
		assert.Equal(t, path, s.Source)
		require.Len(t, s.TestCases, 3)
		assert.Equal(t, domain.TestCase{Name: "testSearchQuery", ClassName: "scenario.SearchTest", Duration: 16.274}, s.TestCases[0])
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := p.ParseFile(filepath.Join(dir, "non_existent_file.xml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't read report")
	})

	t.Run("returns error for invalid xml", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.xml")
		require.NoError(t, os.WriteFile(path, []byte("invalid xml\n"), 0644))

		_, err := p.ParseFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't parse report")
	})
}

func TestJUnitParser_Parse(t *testing.T) {
	p := NewJUnitParser()

	tests := []struct {
		name      string
		input     string
		expected  []domain.Suite
		expectErr bool
	}{
		{
			name: "testsuites root is flattened",
			input: `<testsuites>
  <testsuite name="a.AlphaTest" time="1.5"><testcase name="t1" classname="a.AlphaTest" time="1.5"/></testsuite>
  <testsuite name="b.BetaTest" time="2"/>
</testsuites>`,
			expected: []domain.Suite{
				{Name: "a.AlphaTest", Duration: 1.5, TestCases: []domain.TestCase{{Name: "t1", ClassName: "a.AlphaTest", Duration: 1.5}}},
				{Name: "b.BetaTest", Duration: 2},
			},
		},
		{
			name:  "nested suites are flattened",
			input: `<testsuites><testsuite name="outer"><testsuite name="x.InnerTest" time="3"/></testsuite></testsuites>`,
			expected: []domain.Suite{
				{Name: "x.InnerTest", Duration: 3},
			},
		},
		{
			name:  "missing suite time sums test cases",
			input: `<testsuite name="c.GammaTest"><testcase name="t1" time="0.25"/><testcase name="t2" time="0.5"/></testsuite>`,
			expected: []domain.Suite{
				{Name: "c.GammaTest", Duration: 0.75, TestCases: []domain.TestCase{{Name: "t1", Duration: 0.25}, {Name: "t2", Duration: 0.5}}},
			},
		},
		{
			name:     "thousands separator",
			input:    `<testsuite name="d.DeltaTest" time="1,234.5"/>`,
			expected: []domain.Suite{{Name: "d.DeltaTest", Duration: 1234.5}},
		},
		{
			name:     "empty testsuites",
			input:    `<testsuites/>`,
			expected: []domain.Suite{},
		},
		{name: "empty document", input: "", expectErr: true},
		{name: "unexpected root", input: `<report time="1"/>`, expectErr: true},
		{name: "invalid time", input: `<testsuite name="e.EpsTest" time="fast"/>`, expectErr: true},
		{name: "truncated xml", input: `<testsuite name="f.Test" time="1">`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suites, err := p.Parse(strings.NewReader(tt.input))
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, suites)
		})
	}
}
