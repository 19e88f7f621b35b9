package state

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/tesso57/dietplan/internal/domain/profile"
)

// FieldKind distinguishes typed numbers from fixed option lists.
type FieldKind int

const (
	NumberField FieldKind = iota
	ChoiceField
)

// Form field positions.
const (
	AgeField = iota
	GenderField
	WeightField
	HeightField
	GoalField
	DietField
)

// Field is one row of the profile form.
type Field struct {
	Label    string
	Kind     FieldKind
	Input    textinput.Model
	Options  []string
	Selected int
}

// Value returns the typed text or the selected option label.
func (f *Field) Value() string {
	if f.Kind == ChoiceField {
		if f.Selected < 0 || f.Selected >= len(f.Options) {
			return ""
		}
		return f.Options[f.Selected]
	}
	return strings.TrimSpace(f.Input.Value())
}

// Cycle moves the selection of a choice field by delta, wrapping around.
func (f *Field) Cycle(delta int) {
	n := len(f.Options)
	if f.Kind != ChoiceField || n == 0 {
		return
	}
	f.Selected = ((f.Selected+delta)%n + n) % n
}

// Form is the profile input form.
type Form struct {
	Fields []Field
	Focus  int
}

// NewForm returns the form prefilled with the usual starting values.
func NewForm() Form {
	genders := make([]string, 0, len(profile.Genders))
	for _, g := range profile.Genders {
		genders = append(genders, g.Label())
	}
	goals := make([]string, 0, len(profile.Goals))
	for _, g := range profile.Goals {
		goals = append(goals, g.Label())
	}
	diets := []string{
		profile.Vegetarian.Label(),
		profile.NonVegetarian.Label(),
		profile.Vegan.Label(),
		profile.AnyDiet.Label(),
	}

	f := Form{Fields: []Field{
		numberField("Age", "25"),
		{Label: "Gender", Kind: ChoiceField, Options: genders},
		numberField("Weight (kg)", "70"),
		numberField("Height (cm)", "170"),
		{Label: "Goal", Kind: ChoiceField, Options: goals},
		{Label: "Diet type", Kind: ChoiceField, Options: diets},
	}}
	f.SetFocus(0)
	return f
}

func numberField(label, value string) Field {
	ti := textinput.New()
	ti.CharLimit = 6
	ti.Width = 10
	ti.Prompt = ""
	ti.SetValue(value)
	return Field{Label: label, Kind: NumberField, Input: ti}
}

// Focused returns the field that receives key input.
func (f *Form) Focused() *Field {
	if f.Focus < 0 || f.Focus >= len(f.Fields) {
		return nil
	}
	return &f.Fields[f.Focus]
}

// SetFocus moves focus to index i, wrapping around the field list.
func (f *Form) SetFocus(i int) {
	n := len(f.Fields)
	if n == 0 {
		return
	}
	f.Focus = ((i % n) + n) % n
	for idx := range f.Fields {
		if idx == f.Focus {
			f.Fields[idx].Input.Focus()
		} else {
			f.Fields[idx].Input.Blur()
		}
	}
}

// Next focuses the following field.
func (f *Form) Next() { f.SetFocus(f.Focus + 1) }

// Prev focuses the preceding field.
func (f *Form) Prev() { f.SetFocus(f.Focus - 1) }

// Profile converts the form into a validated profile.
func (f *Form) Profile() (profile.Profile, error) {
	age, err := strconv.Atoi(f.Fields[AgeField].Value())
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: age must be a whole number", profile.ErrInvalid)
	}
	weight, err := strconv.ParseFloat(f.Fields[WeightField].Value(), 64)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: weight must be a number", profile.ErrInvalid)
	}
	height, err := strconv.ParseFloat(f.Fields[HeightField].Value(), 64)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("%w: height must be a number", profile.ErrInvalid)
	}
	gender, err := profile.ParseGender(f.Fields[GenderField].Value())
	if err != nil {
		return profile.Profile{}, err
	}
	goal, err := profile.ParseGoal(f.Fields[GoalField].Value())
	if err != nil {
		return profile.Profile{}, err
	}
	diet, err := profile.ParseDietType(f.Fields[DietField].Value())
	if err != nil {
		return profile.Profile{}, err
	}

	p := profile.Profile{
		Age:      age,
		Gender:   gender,
		WeightKg: weight,
		HeightCm: height,
		Goal:     goal,
		DietType: diet,
	}
	return p, p.Validate()
}
