package htmlform

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

type fieldRenderer struct {
	cfg        config
	submission model.Submission
}

func (r fieldRenderer) render(b *strings.Builder, field model.Field) {
	switch field.Kind {
	case model.KindText:
		r.renderText(b, field)
	case model.KindTextarea:
		r.renderTextarea(b, field)
	case model.KindCheckbox:
		r.renderCheckboxGroup(b, field)
	case model.KindRadio:
		r.renderRadioGroup(b, field)
	case model.KindSelect:
		r.renderSelect(b, field)
	}
}

func (r fieldRenderer) renderText(b *strings.Builder, field model.Field) {
	id := model.ElementID(field.Label)
	openItem(b, field, id)
	fmt.Fprintf(b, "<label for=\"%s\">%s</label>\n", id, r.text(field.Label))
	fmt.Fprintf(b, "<input type=\"text\" id=\"%s\" name=\"%s\" value=\"%s\"%s />\n",
		id, id, html.EscapeString(r.submission.Value(id)), requiredAttr(field))
	b.WriteString("</li>\n")
}

func (r fieldRenderer) renderTextarea(b *strings.Builder, field model.Field) {
	id := model.ElementID(field.Label)
	openItem(b, field, id)
	fmt.Fprintf(b, "<label for=\"%s\">%s</label>\n", id, r.text(field.Label))
	fmt.Fprintf(b, "<textarea id=\"%s\" name=\"%s\" rows=\"5\" cols=\"50\"%s>%s</textarea>\n",
		id, id, requiredAttr(field), html.EscapeString(r.submission.Value(id)))
	b.WriteString("</li>\n")
}

// Each checkbox posts under its own compound id, so its checked state comes
// from that key alone.
func (r fieldRenderer) renderCheckboxGroup(b *strings.Builder, field model.Field) {
	group := model.ElementID(field.Title)
	openItem(b, field, group)
	r.writeFalseLabel(b, field.Title)

	if len(field.Options) > 0 {
		b.WriteString("<span class=\"multi-row clearfix\">\n")
		for _, option := range field.Options {
			id := model.GroupElementID(field.Title, option.Value)
			fmt.Fprintf(b, "<span class=\"row clearfix\"><input type=\"checkbox\" id=\"%s\" name=\"%s\" value=\"%s\"%s /><label for=\"%s\">%s</label></span>\n",
				id, id, html.EscapeString(option.Value), checkedAttr(r.checked(id, option), "checked"), id, r.text(option.Value))
		}
		b.WriteString("</span>\n")
	}

	b.WriteString("</li>\n")
}

// Radios share the group id as their name. Once a submission exists every
// option reflects whether the group received a value at all, not which
// option was picked.
func (r fieldRenderer) renderRadioGroup(b *strings.Builder, field model.Field) {
	group := model.ElementID(field.Title)
	openItem(b, field, group)
	r.writeFalseLabel(b, field.Title)

	if len(field.Options) > 0 {
		b.WriteString("<span class=\"multi-row\">\n")
		for _, option := range field.Options {
			id := model.GroupElementID(field.Title, option.Value)
			fmt.Fprintf(b, "<span class=\"row clearfix\"><input type=\"radio\" id=\"%s\" name=\"%s\" value=\"%s\"%s%s /><label for=\"%s\">%s</label></span>\n",
				id, group, html.EscapeString(option.Value), checkedAttr(r.checked(group, option), "checked"), requiredAttr(field), id, r.text(option.Value))
		}
		b.WriteString("</span>\n")
	}

	b.WriteString("</li>\n")
}

func (r fieldRenderer) renderSelect(b *strings.Builder, field model.Field) {
	group := model.ElementID(field.Title)
	openItem(b, field, group)

	if strings.TrimSpace(field.Title) != "" {
		fmt.Fprintf(b, "<label for=\"%s\">%s</label>\n", group, r.text(field.Title))
	}

	if len(field.Options) > 0 {
		multiple := ""
		if field.Multiple {
			multiple = " multiple=\"multiple\""
		}
		fmt.Fprintf(b, "<select name=\"%s\" id=\"%s\"%s%s>\n", group, group, multiple, requiredAttr(field))
		for _, option := range field.Options {
			fmt.Fprintf(b, "<option value=\"%s\"%s>%s</option>\n",
				html.EscapeString(option.Value), checkedAttr(r.checked(group, option), "selected"), r.text(option.Value))
		}
		b.WriteString("</select>\n")
	}

	b.WriteString("</li>\n")
}

func (r fieldRenderer) writeFalseLabel(b *strings.Builder, title string) {
	if strings.TrimSpace(title) == "" {
		return
	}
	fmt.Fprintf(b, "<span class=\"false_label\">%s</span>\n", r.text(title))
}

// checked falls back to the option default until something has been posted.
func (r fieldRenderer) checked(key string, option model.Option) bool {
	if r.submission == nil {
		return option.Default
	}
	return r.submission.Filled(key)
}

func (r fieldRenderer) text(value string) string {
	if r.cfg.sanitizer == nil {
		return value
	}
	return r.cfg.sanitizer.Sanitize(value)
}

func openItem(b *strings.Builder, field model.Field, id string) {
	required := ""
	if field.Required {
		required = " required"
	}
	fmt.Fprintf(b, "<li class=\"%s%s\" id=\"fld-%s\">\n", model.ElementID(string(field.Kind)), required, id)
}

func requiredAttr(field model.Field) string {
	if field.Required && field.Kind != model.KindCheckbox {
		return " required=\"required\""
	}
	return ""
}

func checkedAttr(on bool, attr string) string {
	if !on {
		return ""
	}
	return fmt.Sprintf(" %s=\"%s\"", attr, attr)
}
