package paging_test

import (
	"testing"

	"github.com/cohortlab/cohorthub/internal/app/system/paging"
)

func makeRows(n int) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return rows
}

func TestTrimPage_FirstPage(t *testing.T) {
	rows := makeRows(paging.PageSize + 1)
	res := paging.TrimPage(&rows, "", "")

	if len(rows) != paging.PageSize {
		t.Errorf("expected %d rows, got %d", paging.PageSize, len(rows))
	}
	if res.HasPrev {
		t.Error("first page must not have a previous page")
	}
	if !res.HasNext {
		t.Error("expected a next page when an extra row was fetched")
	}
}

func TestTrimPage_ShortPage(t *testing.T) {
	rows := makeRows(5)
	res := paging.TrimPage(&rows, "", "")

	if len(rows) != 5 {
		t.Errorf("short page should be untouched, got %d rows", len(rows))
	}
	if res.HasNext {
		t.Error("no next page expected")
	}
}

func TestTrimPage_Forward(t *testing.T) {
	rows := makeRows(paging.PageSize + 1)
	res := paging.TrimPage(&rows, "", "some-cursor")

	if !res.HasPrev {
		t.Error("paging forward from a cursor implies a previous page")
	}
	if !res.HasNext {
		t.Error("expected a next page")
	}
	if rows[len(rows)-1] != paging.PageSize-1 {
		t.Errorf("extra row should be trimmed from the back, last=%d", rows[len(rows)-1])
	}
}

func TestTrimPage_Backward(t *testing.T) {
	rows := makeRows(paging.PageSize + 1)
	res := paging.TrimPage(&rows, "some-cursor", "")

	if !res.HasPrev {
		t.Error("expected a previous page when an extra row was fetched")
	}
	if !res.HasNext {
		t.Error("paging backward implies a next page")
	}
	if rows[0] != 1 {
		t.Errorf("extra row should be trimmed from the front, first=%d", rows[0])
	}
}

func TestConfigureKeyset_Directions(t *testing.T) {
	cfg := paging.ConfigureKeyset("", "")
	if cfg.Direction != paging.Forward || cfg.SortOrder != 1 {
		t.Errorf("default config wrong: %+v", cfg)
	}
	if cfg.Cursor != nil {
		t.Error("no cursor expected without before/after")
	}

	cfg = paging.ConfigureKeyset("bogus-cursor", "")
	if cfg.Direction != paging.Backward || cfg.SortOrder != -1 {
		t.Errorf("backward config wrong: %+v", cfg)
	}
}

func TestReverse(t *testing.T) {
	rows := []int{1, 2, 3, 4}
	paging.Reverse(rows)
	want := []int{4, 3, 2, 1}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("got %v", rows)
		}
	}
}
