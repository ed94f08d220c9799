package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saltyorg/chartpedia/internal/stringtest"
	"github.com/saltyorg/chartpedia/internal/table"
)

var parameterHeadings = []table.Heading{
	{Name: "Name"},
	{Name: "Description"},
	{Name: "Value"},
}

func TestRender(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		headings []table.Heading
		rows     [][]string
		want     string
	}{
		"header only": {
			headings: parameterHeadings,
			want: stringtest.JoinLF(
				"| Name | Description | Value |",
				"| ---- | ----------- | ----- |",
			),
		},
		"padded columns": {
			headings: parameterHeadings,
			rows: [][]string{
				{"`image.tag`", "Image tag to deploy", "`1.0`"},
				{"`a`", "", ""},
			},
			want: stringtest.JoinLF(
				"| Name        | Description         | Value |",
				"| ----------- | ------------------- | ----- |",
				"| `image.tag` | Image tag to deploy | `1.0` |",
				"| `a`         |                     |       |",
			),
		},
		"escaping": {
			headings: []table.Heading{{Name: "A"}, {Name: "B"}},
			rows: [][]string{
				{"x|y", "one\ntwo"},
			},
			want: stringtest.JoinLF(
				"| A    | B          |",
				"| ---- | ---------- |",
				`| x\|y | one<br>two |`,
			),
		},
		"alignment": {
			headings: []table.Heading{
				{Name: "L", Align: table.AlignLeft},
				{Name: "C", Align: table.AlignCenter},
				{Name: "R", Align: table.AlignRight},
			},
			rows: [][]string{{"1", "2", "3", "extra"}},
			want: stringtest.JoinLF(
				"| L   | C   | R   |",
				"| :-- | :-: | --: |",
				"| 1   | 2   | 3   |",
			),
		},
		"wide runes": {
			headings: []table.Heading{{Name: "Key"}, {Name: "Text"}},
			rows: [][]string{
				{"k", "日本"},
				{"longer", "ab"},
			},
			want: stringtest.JoinLF(
				"| Key    | Text |",
				"| ------ | ---- |",
				"| k      | 日本 |",
				"| longer | ab   |",
			),
		},
		"no headings": {
			want: "",
		},
	}

	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, table.Render(tc.headings, tc.rows))
		})
	}
}
