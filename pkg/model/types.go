package model

// Kind identifies the control a Field renders as. Values match the cssClass
// names emitted by the authoring tool so they survive a round trip unchanged.
type Kind string

const (
	KindText     Kind = "input_text"
	KindTextarea Kind = "textarea"
	KindCheckbox Kind = "checkbox"
	KindRadio    Kind = "radio"
	KindSelect   Kind = "select"
)

// Kinds lists the recognised kinds in authoring order.
func Kinds() []Kind {
	return []Kind{KindText, KindTextarea, KindCheckbox, KindRadio, KindSelect}
}

// Known reports whether k is one of the five recognised kinds. Every other
// value is the unknown variant: it is preserved through persistence but never
// rendered or validated.
func (k Kind) Known() bool {
	switch k {
	case KindText, KindTextarea, KindCheckbox, KindRadio, KindSelect:
		return true
	default:
		return false
	}
}

// HasOptions reports whether fields of this kind carry an option list.
func (k Kind) HasOptions() bool {
	switch k {
	case KindCheckbox, KindRadio, KindSelect:
		return true
	default:
		return false
	}
}

// Option is one choice inside a checkbox group, radio group or select.
type Option struct {
	Value   string
	Default bool
}

// Field describes a single question in a form. Label is used by text inputs
// and textareas (it doubles as the field name); Title, Options and Multiple
// apply to the option-bearing kinds.
type Field struct {
	Kind     Kind
	Required bool
	Label    string
	Title    string
	Options  []Option
	Multiple bool
}

// Name returns the label or title that the field's element id is derived
// from, depending on its kind.
func (f Field) Name() string {
	if f.Kind.HasOptions() {
		return f.Title
	}
	return f.Label
}

// ID returns the element id used for the field's control and submission key.
func (f Field) ID() string {
	return ElementID(f.Name())
}

// Structure is the ordered list of fields making up a form.
type Structure []Field

// Known returns the fields whose kind is recognised, preserving order. This is
// the single place unknown kinds are filtered out.
func (s Structure) Known() []Field {
	if len(s) == 0 {
		return nil
	}
	out := make([]Field, 0, len(s))
	for _, field := range s {
		if !field.Kind.Known() {
			continue
		}
		out = append(out, field)
	}
	return out
}

// Clone returns a deep copy so callers can hand a structure to a document
// without sharing option slices.
func (s Structure) Clone() Structure {
	if s == nil {
		return nil
	}
	out := make(Structure, len(s))
	for i, field := range s {
		out[i] = field
		if field.Options != nil {
			out[i].Options = append([]Option(nil), field.Options...)
		}
	}
	return out
}
