package formatter

import (
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		rows     [][]string
		expected string
	}{
		{
			name:   "Basic alignment",
			header: []string{"file", "state"},
			rows: [][]string{
				{"a.xlsx", "finalized"},
				{"long_name.xlsx", "failed"},
			},
			expected: `
| file           | state     |
| -------------- | --------- |
| a.xlsx         | finalized |
| long_name.xlsx | failed    |
`,
		},
		{
			name:   "Minimum width",
			header: []string{"a", "b"},
			rows:   [][]string{{"1", "2"}},
			expected: `
| a   | b   |
| --- | --- |
| 1   | 2   |
`,
		},
		{
			name:   "Ragged rows",
			header: []string{"file", "state", "error"},
			rows: [][]string{
				{"a.xlsx"},
				{"b.xlsx", "failed", "bad", "extra"},
			},
			expected: `
| file   | state  | error |
| ------ | ------ | ----- |
| a.xlsx |        |       |
| b.xlsx | failed | bad   |
`,
		},
		{
			name:   "Wide characters",
			header: []string{"file", "n"},
			rows:   [][]string{{"報告.xlsx", "1"}},
			expected: `
| file      | n   |
| --------- | --- |
| 報告.xlsx | 1   |
`,
		},
		{
			name:   "Escapes pipes and newlines",
			header: []string{"error"},
			rows:   [][]string{{"a|b\nc"}},
			expected: `
| error  |
| ------ |
| a\|b c |
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Table(tt.header, tt.rows)
			want := strings.TrimPrefix(tt.expected, "\n")

			if got != want {
				t.Errorf("Table() mismatch\nGot:\n%s\nExpected:\n%s", got, want)
			}
		})
	}
}

func TestTable_EmptyHeader(t *testing.T) {
	if got := Table(nil, [][]string{{"x"}}); got != "" {
		t.Errorf("Table(nil) = %q, want empty", got)
	}
}
