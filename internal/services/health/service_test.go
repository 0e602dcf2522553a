package health

import (
	"context"
	"testing"

	"rai-review-backend/internal/catalog"
)

type holder struct{ cat *catalog.Catalog }

func (h holder) Current() *catalog.Catalog { return h.cat }

func TestStatusRequiresCatalog(t *testing.T) {
	st := NewService(holder{}, "memory", "placeholder").Status(context.Background())
	if st.OK {
		t.Fatalf("expected not ok without catalog")
	}

	st = NewService(holder{cat: &catalog.Catalog{Version: "2025.1"}}, "memory", "placeholder").Status(context.Background())
	if !st.OK || st.CatalogVersion != "2025.1" {
		t.Fatalf("unexpected status: %+v", st)
	}
	if st.CacheBackend != "memory" || st.Generation != "placeholder" {
		t.Fatalf("unexpected status: %+v", st)
	}
}
