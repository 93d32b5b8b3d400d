package main

import (
	"strings"
	"testing"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/models"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
)

func TestRenderPreview(t *testing.T) {
	rows := []models.PreviewRow{{
		Sheet:   "대가",
		R:       4,
		Index:   0,
		C:       map[string]interface{}{"B": "A", "C": 2.0, "E": 5.0},
		Factors: map[string]float64{"D": 2.5},
	}}
	out := renderPreview(rows, []schema.Pair{{Factor: "D", Output: "E"}})

	for _, want := range []string{"대가_0", "edit key", "2.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if out := renderPreview(nil, nil); !strings.Contains(out, "no matching rows") {
		t.Errorf("unexpected output %q", out)
	}
	if out := renderSheets(nil); !strings.Contains(out, "no sheets") {
		t.Errorf("unexpected output %q", out)
	}
}
