package catalog

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/cookanything/pantry/internal/recipe"
)

func names(list []recipe.Recipe) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Name
	}
	return out
}

var pantry = []recipe.Recipe{
	{Name: "Pad Thai", Category: "dinner", Cuisine: "thai", Tags: []string{"noodles", "spicy"}, Date: "2024-03-01"},
	{Name: "banana bread", Category: "dessert", Cuisine: "american", Tags: []string{"baking"}, Date: "2023-11-20"},
	{Name: "Éclair", Category: "dessert", Cuisine: "french", Tags: []string{"pastry"}, Date: "2024-06-15"},
	{Name: "Tom Yum", Category: "Dinner", Cuisine: "thai", Tags: []string{"soup", "spicy"}, Date: "2022-01-05"},
	{Name: "Apple Pie", Category: "", Cuisine: "american", Tags: []string{}, Date: ""},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		category string
		search   string
		want     []string
	}{
		{"no filter keeps order", "", "", []string{"Pad Thai", "banana bread", "Éclair", "Tom Yum", "Apple Pie"}},
		{"category ignores case", "DINNER", "", []string{"Pad Thai", "Tom Yum"}},
		{"search name", "", "BREAD", []string{"banana bread"}},
		{"search cuisine", "", "thai", []string{"Pad Thai", "Tom Yum"}},
		{"search tag substring", "", "pic", []string{"Pad Thai", "Tom Yum"}},
		{"search not trimmed", "", " pie", []string{"Apple Pie"}},
		{"combined", "dessert", "past", []string{"Éclair"}},
		{"no match", "dinner", "baking", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Filter(pantry, tt.category, tt.search))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter(%q, %q) = %v, want %v", tt.category, tt.search, got, tt.want)
			}
		})
	}
}

func TestFilter_IsSubsetAndDoesNotMutate(t *testing.T) {
	before := fmt.Sprint(pantry)
	got := Filter(pantry, "dessert", "")
	if len(got) > len(pantry) {
		t.Fatalf("Filter grew the list")
	}
	got[0].Name = "changed"
	if fmt.Sprint(pantry) != before {
		t.Fatalf("Filter mutated its input")
	}
}

func TestSort_TextKeysUseCollation(t *testing.T) {
	got := names(Sort(pantry, SortName))
	want := []string{"Apple Pie", "banana bread", "Éclair", "Pad Thai", "Tom Yum"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort(name) = %v, want %v", got, want)
	}

	got = names(Sort(pantry, SortCuisine))
	want = []string{"banana bread", "Apple Pie", "Éclair", "Pad Thai", "Tom Yum"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort(cuisine) = %v, want %v (stable for ties)", got, want)
	}
}

func TestSort_RecentNewestFirst(t *testing.T) {
	dated := pantry[:4]
	got := names(Sort(dated, SortRecent))
	want := []string{"Éclair", "Pad Thai", "banana bread", "Tom Yum"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort(recent) = %v, want %v", got, want)
	}

	if unknown := names(Sort(dated, SortKey("bogus"))); !reflect.DeepEqual(unknown, want) {
		t.Fatalf("Sort(unknown) = %v, want recent order %v", unknown, want)
	}
}

func TestSort_UnparsableDateComparesEqual(t *testing.T) {
	list := []recipe.Recipe{
		{Name: "undated", Date: "someday"},
		{Name: "dated", Date: "2024-01-01"},
	}
	got := names(Sort(list, SortRecent))
	if !reflect.DeepEqual(got, []string{"undated", "dated"}) {
		t.Fatalf("Sort(recent) = %v, want input order kept for an unparsable pair", got)
	}
}

func TestSort_DoesNotMutate(t *testing.T) {
	list := []recipe.Recipe{{Name: "b"}, {Name: "a"}}
	_ = Sort(list, SortName)
	if list[0].Name != "b" {
		t.Fatalf("Sort mutated its input")
	}
	if got := Sort(nil, SortName); got == nil || len(got) != 0 {
		t.Fatalf("Sort(nil) = %#v, want empty slice", got)
	}
}

func TestParseDate(t *testing.T) {
	for _, value := range []string{"2024-03-01", "March 3, 2021", "3/4/2020", "2024-03-01T10:00:00Z"} {
		if _, ok := ParseDate(value); !ok {
			t.Fatalf("ParseDate(%q) failed", value)
		}
	}
	for _, value := range []string{"", "   ", "someday"} {
		if _, ok := ParseDate(value); ok {
			t.Fatalf("ParseDate(%q) succeeded, want failure", value)
		}
	}
}

func numbered(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, n)
	for i := range out {
		out[i] = recipe.Recipe{Name: fmt.Sprintf("r%02d", i+1)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	list := numbered(50)
	tests := []struct {
		page      int
		wantLen   int
		wantFirst string
	}{
		{1, 24, "r01"},
		{2, 24, "r25"},
		{3, 2, "r49"},
		{4, 0, ""},
		{0, 0, ""},
		{-1, 0, ""},
		{math.MaxInt, 0, ""},
		{math.MaxInt/PageSize + 2, 0, ""},
	}
	for _, tt := range tests {
		got := Paginate(list, PageSize, tt.page)
		if len(got) != tt.wantLen {
			t.Fatalf("Paginate(page=%d) len = %d, want %d", tt.page, len(got), tt.wantLen)
		}
		if tt.wantLen > 0 && got[0].Name != tt.wantFirst {
			t.Fatalf("Paginate(page=%d) first = %q, want %q", tt.page, got[0].Name, tt.wantFirst)
		}
	}
}

func TestPaginate_PagesPartitionTheList(t *testing.T) {
	for _, total := range []int{0, 1, 23, 24, 25, 48, 49, 100} {
		list := numbered(total)
		pages := PageCount(total, PageSize)
		var joined []string
		for p := 1; p <= pages; p++ {
			joined = append(joined, names(Paginate(list, PageSize, p))...)
		}
		if len(joined) != total {
			t.Fatalf("total=%d: pages cover %d records", total, len(joined))
		}
		for i, name := range joined {
			if name != list[i].Name {
				t.Fatalf("total=%d: order broken at %d", total, i)
			}
		}
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct{ total, size, want int }{
		{0, 24, 0},
		{1, 24, 1},
		{24, 24, 1},
		{25, 24, 2},
		{50, 24, 3},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := PageCount(tt.total, tt.size); got != tt.want {
			t.Fatalf("PageCount(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}

func TestCategories_FirstSeenDistinctNonEmpty(t *testing.T) {
	got := Categories(pantry)
	want := []string{"dinner", "dessert", "Dinner"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories = %v, want %v", got, want)
	}
}

func TestApply(t *testing.T) {
	list := numbered(30)
	res := Apply(list, Query{Search: "r1", Sort: SortName}, 5, 2)
	if res.Total != 10 {
		t.Fatalf("Total = %d, want 10", res.Total)
	}
	if res.Pages != 2 {
		t.Fatalf("Pages = %d, want 2", res.Pages)
	}
	if got := names(res.Page); !reflect.DeepEqual(got, []string{"r15", "r16", "r17", "r18", "r19"}) {
		t.Fatalf("Page = %v", got)
	}
}
