package repository

import (
	"encoding/json"
	"strings"

	"golang.org/x/text/language"
)

// ValueKind is the kind of the property value.
type ValueKind int

// Property value kinds.
const (
	ScalarValue ValueKind = iota
	CollectionValue
	MLTextValue
)

// String implements fmt.Stringer.
func (k ValueKind) String() string {
	switch k {
	case ScalarValue:
		return "scalar"
	case CollectionValue:
		return "collection"
	case MLTextValue:
		return "mltext"
	}
	return "unknown"
}

// Value is the property value. It is either a scalar text (possibly null),
// an ordered collection of the values or the multilingual text.
type Value struct {
	Kind   ValueKind
	Text   string
	Null   bool
	Items  []Value
	MLText MLText
}

// Scalar creates the scalar text value.
func Scalar(text string) Value {
	return Value{Kind: ScalarValue, Text: text}
}

// Null creates the null scalar value.
func Null() Value {
	return Value{Kind: ScalarValue, Null: true}
}

// Collection creates the collection value with provided 'items'.
func Collection(items ...Value) Value {
	return Value{Kind: CollectionValue, Items: append([]Value{}, items...)}
}

// ML creates the multilingual text value.
func ML(text MLText) Value {
	return Value{Kind: MLTextValue, MLText: text}
}

// IsCollection checks if the value is a collection.
func (v Value) IsCollection() bool {
	return v.Kind == CollectionValue
}

// Append returns the collection value with the 'item' added at the end.
// A non collection value is turned into the collection holding itself first.
func (v Value) Append(item Value) Value {
	if v.Kind != CollectionValue {
		return Collection(v, item)
	}
	items := make([]Value, len(v.Items), len(v.Items)+1)
	copy(items, v.Items)
	return Value{Kind: CollectionValue, Items: append(items, item)}
}

// Strings gets the text of the value or of all its items.
func (v Value) Strings() []string {
	switch v.Kind {
	case CollectionValue:
		var texts []string
		for _, item := range v.Items {
			texts = append(texts, item.Strings()...)
		}
		return texts
	case MLTextValue:
		texts := make([]string, len(v.MLText))
		for i, entry := range v.MLText {
			texts[i] = entry.Text
		}
		return texts
	default:
		if v.Null {
			return nil
		}
		return []string{v.Text}
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	switch v.Kind {
	case CollectionValue:
		items := make([]string, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.String()
		}
		return "[" + strings.Join(items, ", ") + "]"
	case MLTextValue:
		return v.MLText.String()
	default:
		if v.Null {
			return "<null>"
		}
		return v.Text
	}
}

type jsonValue struct {
	Kind   string      `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Null   bool        `json:"null,omitempty"`
	Items  []Value     `json:"items,omitempty"`
	MLText []jsonEntry `json:"mltext,omitempty"`
}

type jsonEntry struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	jv := jsonValue{Kind: v.Kind.String(), Text: v.Text, Null: v.Null, Items: v.Items}
	for _, entry := range v.MLText {
		jv.MLText = append(jv.MLText, jsonEntry{Locale: entry.Locale.String(), Text: entry.Text})
	}
	return json.Marshal(jv)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	jv := jsonValue{}
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	*v = Value{Text: jv.Text, Null: jv.Null, Items: jv.Items}
	switch jv.Kind {
	case "collection":
		v.Kind = CollectionValue
	case "mltext":
		v.Kind = MLTextValue
		for _, entry := range jv.MLText {
			tag, err := language.Parse(entry.Locale)
			if err != nil {
				return err
			}
			v.MLText = v.MLText.With(tag, entry.Text)
		}
	default:
		v.Kind = ScalarValue
	}
	return nil
}

// MLEntry is the text in a single locale.
type MLEntry struct {
	Locale language.Tag
	Text   string
}

// MLText is the multilingual text. The entries are kept in the insertion order
// with at most one entry per locale.
type MLText []MLEntry

// With returns the text with the 'locale' entry set to the 'text'.
func (m MLText) With(locale language.Tag, text string) MLText {
	result := make(MLText, 0, len(m)+1)
	replaced := false
	for _, entry := range m {
		if entry.Locale == locale {
			entry.Text = text
			replaced = true
		}
		result = append(result, entry)
	}
	if !replaced {
		result = append(result, MLEntry{Locale: locale, Text: text})
	}
	return result
}

// Get gets the text for the 'locale'.
func (m MLText) Get(locale language.Tag) (string, bool) {
	for _, entry := range m {
		if entry.Locale == locale {
			return entry.Text, true
		}
	}
	return "", false
}

// Closest gets the text in the locale that best matches the 'preferred' locales.
func (m MLText) Closest(preferred ...language.Tag) (string, bool) {
	if len(m) == 0 {
		return "", false
	}
	tags := make([]language.Tag, len(m))
	for i, entry := range m {
		tags[i] = entry.Locale
	}
	_, index, _ := language.NewMatcher(tags).Match(preferred...)
	return m[index].Text, true
}

// String implements fmt.Stringer.
func (m MLText) String() string {
	parts := make([]string, len(m))
	for i, entry := range m {
		parts[i] = entry.Locale.String() + "=" + entry.Text
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
