package response

import "testing"

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 35)
	if p.TotalPages != 4 {
		t.Errorf("total pages = %d, want 4", p.TotalPages)
	}
	if p.From != 11 || p.To != 20 {
		t.Errorf("window = [%d, %d], want [11, 20]", p.From, p.To)
	}
	if !p.HasMore {
		t.Error("expected more pages after page 2 of 4")
	}
}

func TestNewPaginationLastPage(t *testing.T) {
	p := NewPagination(4, 10, 35)
	if p.To != 35 {
		t.Errorf("to = %d, want 35", p.To)
	}
	if p.HasMore {
		t.Error("last page should not report more")
	}
}

func TestNewPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 10, 0)
	if p.From != 0 || p.To != 0 {
		t.Errorf("window = [%d, %d], want [0, 0]", p.From, p.To)
	}
	if p.HasMore {
		t.Error("empty result should not report more")
	}
}

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 5)
	if p.Page != 1 || p.PageSize != 20 {
		t.Errorf("defaults = page %d size %d, want page 1 size 20", p.Page, p.PageSize)
	}
}
