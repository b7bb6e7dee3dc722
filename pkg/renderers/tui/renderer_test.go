package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	textAreas    []string
	infoMessages []string
	inputPos     int
	selectPos    int
	multiPos     int
	textPos      int

	inputConfigs  []InputConfig
	multiConfigs  []SelectConfig
	selectConfigs []SelectConfig
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputConfigs = append(s.inputConfigs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectConfigs = append(s.selectConfigs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func orderForm() model.Structure {
	return model.Structure{
		{Kind: model.KindText, Required: true, Label: "Full Name"},
		{Kind: model.KindTextarea, Label: "Notes"},
		{Kind: model.KindRadio, Title: "Size", Options: []model.Option{{Value: "Small"}, {Value: "Large", Default: true}}},
		{Kind: model.KindSelect, Title: "Extras", Multiple: true, Options: []model.Option{{Value: "Bag"}, {Value: "Card"}}},
		{Kind: model.KindCheckbox, Required: true, Title: "Toppings", Options: []model.Option{
			{Value: "Cheese", Default: true},
			{Value: "Green Olives"},
		}},
		{Kind: model.Kind("signature"), Label: "Sign"},
	}
}

func TestRenderer_FillCollectsSubmission(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada"},
		textAreas: []string{"ring twice"},
		selectIdx: []int{0},
		multiIdx:  [][]int{{0, 1}, {1}},
	}
	r := New(WithPromptDriver(driver))

	got, err := r.Fill(context.Background(), orderForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := model.Submission{
		"full_name":             "Ada",
		"notes":                 "ring twice",
		"size":                  "Small",
		"extras":                "Bag,Card",
		"toppings-green_olives": "Green Olives",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	if driver.selectConfigs[0].DefaultIndex != 1 {
		t.Fatalf("expected default radio option preselected, got %d", driver.selectConfigs[0].DefaultIndex)
	}
	if diff := cmp.Diff([]int{0}, driver.multiConfigs[1].Defaults); diff != "" {
		t.Fatalf("checkbox defaults mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Message != "Full Name *" || driver.inputConfigs[0].Validator == nil {
		t.Fatalf("expected required prompt, got %#v", driver.inputConfigs[0])
	}
	if err := driver.inputConfigs[0].Validator(" "); err == nil {
		t.Fatalf("expected blank answer to be rejected")
	}
	if err := driver.inputConfigs[0].Validator("0"); err == nil {
		t.Fatalf("expected \"0\" answer to be rejected")
	}
}

func TestRenderer_FillPrefillsFromSubmission(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Grace"},
		textAreas: []string{""},
		selectIdx: []int{1},
		multiIdx:  [][]int{{}, {0}},
	}
	r := New(WithPromptDriver(driver))

	prior := model.Submission{"full_name": "Gr", "toppings-green_olives": "Green Olives", "extras": "Card"}
	_, err := r.Fill(context.Background(), orderForm(), render.RenderOptions{Submission: prior})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	if driver.inputConfigs[0].Default != "Gr" {
		t.Fatalf("expected prior text value as default, got %q", driver.inputConfigs[0].Default)
	}
	if diff := cmp.Diff([]int{1}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("multi select defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1}, driver.multiConfigs[1].Defaults); diff != "" {
		t.Fatalf("checkbox defaults should follow the submission (-want +got):\n%s", diff)
	}
}

func TestRenderer_FillRepromptsFailedFields(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"Ada"},
		textAreas: []string{""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{}, {}, {1}},
	}
	r := New(WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "! "}))

	got, err := r.Fill(context.Background(), orderForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got["toppings-green_olives"] != "Green Olives" {
		t.Fatalf("expected second attempt to be recorded, got %#v", got)
	}
	if driver.inputPos != 1 || driver.multiPos != 3 {
		t.Fatalf("expected only the checkbox group to be asked again (inputs=%d multi=%d)", driver.inputPos, driver.multiPos)
	}

	want := []string{
		"Fields marked * are required.",
		"! Please check at least one Toppings choice.",
	}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderer_FillGivesUpAfterMaxAttempts(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", ""},
		textAreas: []string{""},
		selectIdx: []int{0},
		multiIdx:  [][]int{{}, {0}},
	}
	r := New(WithPromptDriver(driver), WithMaxAttempts(2))

	got, err := r.Fill(context.Background(), orderForm(), render.RenderOptions{})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if got["toppings-cheese"] != "Cheese" {
		t.Fatalf("expected partial submission to be returned, got %#v", got)
	}
}

func TestRenderer_RenderFormats(t *testing.T) {
	structure := model.Structure{{Kind: model.KindText, Label: "City"}, {Kind: model.KindText, Label: "Name"}}

	cases := []struct {
		format      OutputFormat
		contentType string
		want        string
	}{
		{OutputFormatJSON, "application/json", `{"city":"Paris","name":"Ada Lovelace"}`},
		{OutputFormatFormURLEncoded, "application/x-www-form-urlencoded", "city=Paris&name=Ada+Lovelace"},
		{OutputFormatPrettyText, "text/plain", "city=Paris\nname=Ada Lovelace\n"},
	}
	for _, tc := range cases {
		driver := &stubDriver{inputs: []string{"Paris", "Ada Lovelace"}}
		r := New(WithPromptDriver(driver), WithOutputFormat(tc.format))
		if r.ContentType() != tc.contentType {
			t.Fatalf("%s: content type %q", tc.format, r.ContentType())
		}
		out, err := r.Render(context.Background(), structure, render.RenderOptions{})
		if err != nil {
			t.Fatalf("%s: render: %v", tc.format, err)
		}
		if diff := cmp.Diff(tc.want, string(out)); diff != "" {
			t.Fatalf("%s output mismatch (-want +got):\n%s", tc.format, diff)
		}
	}
}

func TestRenderer_SubmitTransformer(t *testing.T) {
	driver := &stubDriver{inputs: []string{"Ada"}}
	r := New(WithPromptDriver(driver), WithSubmitTransformer(func(sub model.Submission) (model.Submission, error) {
		sub["source"] = "terminal"
		return sub, nil
	}))

	out, err := r.Render(context.Background(), model.Structure{{Kind: model.KindText, Label: "Name"}}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != `{"name":"Ada","source":"terminal"}` {
		t.Fatalf("unexpected output %s", out)
	}

	failing := New(WithPromptDriver(&stubDriver{inputs: []string{"Ada"}}), WithSubmitTransformer(func(model.Submission) (model.Submission, error) {
		return nil, errors.New("boom")
	}))
	if _, err := failing.Render(context.Background(), model.Structure{{Kind: model.KindText, Label: "Name"}}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected transformer error")
	}
}

func TestRenderer_PropagatesAbort(t *testing.T) {
	driver := &abortDriver{stubDriver{}}
	r := New(WithPromptDriver(driver))
	if _, err := r.Fill(context.Background(), model.Structure{{Kind: model.KindText, Label: "Name"}}, render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct {
	stubDriver
}

func (a *abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestStateTracksIssues(t *testing.T) {
	state := NewState(nil)
	if state.Prefilled() {
		t.Fatalf("nil prefill should not count as prefilled")
	}
	state.SetIssues([]validation.Issue{
		{Field: "name", Message: "Please complete the Name field."},
		{Field: "days", Message: "Please check at least one Days choice."},
	})
	if diff := cmp.Diff([]string{"days", "name"}, state.FailedIDs()); diff != "" {
		t.Fatalf("failed ids mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]OutputFormat{
		"":       OutputFormatJSON,
		"json":   OutputFormatJSON,
		" Form ": OutputFormatFormURLEncoded,
		"PRETTY": OutputFormatPrettyText,
	}
	for input, want := range cases {
		got, err := ParseOutputFormat(input)
		if err != nil {
			t.Fatalf("ParseOutputFormat(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseOutputFormat(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRenderer_MultiSelectPrefillKeepsCommaOptions(t *testing.T) {
	structure := model.Structure{{Kind: model.KindSelect, Title: "Extras", Multiple: true, Options: []model.Option{
		{Value: "Bag, large"},
		{Value: "Card"},
		{Value: "Bag"},
	}}}
	driver := &stubDriver{multiIdx: [][]int{{0, 1}}}
	r := New(WithPromptDriver(driver))

	got, err := r.Fill(context.Background(), structure, render.RenderOptions{
		Submission: model.Submission{"extras": "Bag, large,Card"},
	})
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, driver.multiConfigs[0].Defaults); diff != "" {
		t.Fatalf("prefill defaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(model.Submission{"extras": "Bag, large,Card"}, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}
}
