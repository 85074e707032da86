package pagination

import "testing"

func TestPage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name       string
		size, page int
		wantFirst  int
		wantLen    int
	}{
		{"first page", 12, 1, 0, 12},
		{"middle page", 12, 2, 12, 12},
		{"short last page", 12, 3, 24, 1},
		{"beyond range", 12, 4, 0, 0},
		{"zero page", 12, 0, 0, 0},
		{"zero size", 0, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Page(items, tt.size, tt.page)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen > 0 && got[0] != tt.wantFirst {
				t.Errorf("first item = %d, want %d", got[0], tt.wantFirst)
			}
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		count int
		size  int
		want  int
	}{
		{"25 by 12", 25, 12, 3},
		{"exact multiple", 24, 12, 2},
		{"single short page", 5, 12, 1},
		{"empty", 0, 12, 0},
		{"zero size", 25, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPages(make([]struct{}, tt.count), tt.size); got != tt.want {
				t.Errorf("TotalPages = %d, want %d", got, tt.want)
			}
		})
	}
}
