package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type searchRow struct {
	ID   string
	Name string
}

func TestFilterBySearch(t *testing.T) {
	rows := []searchRow{
		{ID: "P-0001", Name: "Amina Okafor"},
		{ID: "P-0002", Name: "John Kamau"},
		{ID: "P-0003", Name: "Grace Wanjiru"},
	}
	fields := func(r searchRow) []string { return []string{r.ID, r.Name} }

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty term keeps everything in order", "", []string{"P-0001", "P-0002", "P-0003"}},
		{"whitespace term keeps everything", "   ", []string{"P-0001", "P-0002", "P-0003"}},
		{"name substring ignores case", "KAMAU", []string{"P-0002"}},
		{"id substring", "p-000", []string{"P-0001", "P-0002", "P-0003"}},
		{"partial name", "an", []string{"P-0003"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterBySearch(rows, tt.term, fields)
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
