package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

func TestValidate_RequiredText(t *testing.T) {
	structure := model.Structure{{Kind: model.KindText, Label: "Name", Required: true}}

	failed := validation.Validate(structure, model.Submission{})
	if failed.Success {
		t.Fatalf("expected failure for empty submission")
	}
	if len(failed.Issues) != 1 || !strings.Contains(failed.Issues[0].Message, "Name") {
		t.Fatalf("expected one issue mentioning Name, got %#v", failed.Issues)
	}
	if _, ok := failed.Values["name"]; ok {
		t.Fatalf("failed field must not be recorded in values")
	}

	passed := validation.Validate(structure, model.Submission{"name": "Alice"})
	if !passed.Success {
		t.Fatalf("expected success, got %#v", passed.Issues)
	}
	if got := passed.Values["name"]; got != "Alice" {
		t.Fatalf("values[name] = %q", got)
	}
}

func TestValidate_CheckboxGroup(t *testing.T) {
	structure := model.Structure{{Kind: model.KindCheckbox, Required: true, Title: "Toppings", Options: []model.Option{
		{Value: "Cheese"},
		{Value: "Olives"},
	}}}

	none := validation.Validate(structure, model.Submission{})
	if none.Success {
		t.Fatalf("expected failure with no options checked")
	}
	want := []string{"Please check at least one Toppings choice."}
	if diff := cmp.Diff(want, none.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	one := validation.Validate(structure, model.Submission{"toppings-olives": "Olives"})
	if !one.Success {
		t.Fatalf("expected success, got %#v", one.Issues)
	}
	if diff := cmp.Diff(map[string]string{"olives": "Olives"}, one.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cheese"}, one.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_ZeroIsNoAnswer(t *testing.T) {
	structure := model.Structure{
		{Kind: model.KindText, Label: "Age", Required: true},
		{Kind: model.KindSelect, Title: "Seats", Required: true, Options: []model.Option{{Value: "0"}, {Value: "2"}}},
		{Kind: model.KindCheckbox, Title: "Days", Required: true, Options: []model.Option{{Value: "Mon"}}},
	}

	got := validation.Validate(structure, model.Submission{"age": "0", "seats": "0", "days-mon": "0"})
	want := []string{
		"Please complete the Age field.",
		"Please complete the Seats field.",
		"Please check at least one Days choice.",
	}
	if got.Success {
		t.Fatalf("expected \"0\" answers to fail required fields")
	}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_MixedStructure(t *testing.T) {
	structure := model.Structure{
		{Kind: model.KindText, Label: "Email", Required: true},
		{Kind: model.KindTextarea, Label: "Notes"},
		{Kind: model.KindRadio, Title: "Plan", Required: true, Options: []model.Option{{Value: "Free"}}},
		{Kind: model.KindSelect, Title: "Seats"},
		{Kind: model.Kind("signature"), Label: "Sign", Required: true},
		{Kind: model.KindCheckbox, Title: "Extras", Options: []model.Option{{Value: "Support"}}},
	}
	submission := model.Submission{
		"email": "",
		"notes": "",
		"seats": "0",
	}

	got := validation.Validate(structure, submission)
	want := validation.Result{
		Success: false,
		Values:  map[string]string{"notes": "", "seats": "0"},
		Missing: []string{"support"},
		Issues: []validation.Issue{
			{Field: "email", Label: "Email", Message: "Please complete the Email field."},
			{Field: "plan", Label: "Plan", Message: "Please complete the Plan field."},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_OptionalMissingKeys(t *testing.T) {
	structure := model.Structure{{Kind: model.KindText, Label: "Nickname"}}
	got := validation.Validate(structure, nil)
	if !got.Success {
		t.Fatalf("optional field should not fail")
	}
	if diff := cmp.Diff([]string{"nickname"}, got.Missing); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{}, got.Values, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestResult_ErrorHTML(t *testing.T) {
	structure := model.Structure{
		{Kind: model.KindText, Label: "Name", Required: true},
		{Kind: model.KindCheckbox, Title: "Days", Required: true, Options: []model.Option{{Value: "Mon"}}},
	}
	got := validation.Validate(structure, model.Submission{})

	want := "<li>Please complete the Name field.</li>\n<li>Please check at least one Days choice.</li>\n"
	if diff := cmp.Diff(want, got.ErrorHTML()); diff != "" {
		t.Fatalf("error html mismatch (-want +got):\n%s", diff)
	}
	if (validation.Result{}).ErrorHTML() != "" {
		t.Fatalf("expected empty html for empty result")
	}
}

func TestValidate_Translator(t *testing.T) {
	tr := render.TranslatorFunc(func(locale, key string, args ...any) (string, error) {
		if locale != "fr" {
			return "", errors.New("unsupported locale")
		}
		switch key {
		case render.MessageRequiredField:
			return "Veuillez remplir le champ " + args[0].(string) + ".", nil
		}
		return "", errors.New("missing key")
	})
	structure := model.Structure{
		{Kind: model.KindText, Label: "Nom", Required: true},
		{Kind: model.KindCheckbox, Title: "Jours", Required: true, Options: []model.Option{{Value: "Lun"}}},
	}

	got := validation.Validate(structure, nil, validation.WithTranslator(tr, "fr"))
	want := []string{
		"Veuillez remplir le champ Nom.",
		"Please check at least one Jours choice.",
	}
	if diff := cmp.Diff(want, got.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}
