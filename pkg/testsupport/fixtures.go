package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// OrderForm returns a structure exercising all five field kinds plus one
// unknown kind. Every call returns a fresh copy.
func OrderForm() model.Structure {
	return model.Structure{
		{Kind: model.KindText, Required: true, Label: "Full Name"},
		{Kind: model.KindTextarea, Label: "Delivery Notes"},
		{Kind: model.KindCheckbox, Required: true, Title: "Toppings", Options: []model.Option{
			{Value: "Cheese", Default: true},
			{Value: "Green Olives"},
		}},
		{Kind: model.KindRadio, Title: "Size", Options: []model.Option{
			{Value: "Small"},
			{Value: "Large", Default: true},
		}},
		{Kind: model.Kind("signature"), Label: "Sign here"},
		{Kind: model.KindSelect, Required: true, Title: "Crust", Options: []model.Option{
			{Value: "Thin"},
			{Value: "Deep Dish"},
		}},
	}
}

// CompleteOrder is a submission that passes validation for OrderForm.
func CompleteOrder() model.Submission {
	return model.Submission{
		"full_name":             "Ada Lovelace",
		"delivery_notes":        "",
		"toppings-green_olives": "Green Olives",
		"size":                  "Small",
		"crust":                 "Thin",
	}
}

// updateGoldens rewrites golden files instead of comparing against them.
const updateGoldens = "UPDATE_GOLDENS"

// MustReadGoldenString returns the golden file at path as a string.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("golden %s: %v", path, err)
	}
	return string(raw)
}

// AssertGolden fails t when output differs from the golden file at path.
// With UPDATE_GOLDENS set the file is rewritten from output instead.
func AssertGolden(t *testing.T, path string, output []byte) {
	t.Helper()
	if os.Getenv(updateGoldens) != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("golden dir: %v", err)
		}
		if err := os.WriteFile(path, output, 0o644); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		return
	}
	if diff := cmp.Diff(MustReadGoldenString(t, path), string(output)); diff != "" {
		t.Fatalf("golden %s mismatch (-want +got):\n%s", filepath.Base(path), diff)
	}
}

// Context is the context handed to code under test.
func Context() context.Context {
	return context.Background()
}
