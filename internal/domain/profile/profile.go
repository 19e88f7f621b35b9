// Package profile defines the biometric input collected from the user.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// Form ranges accepted for numeric inputs.
const (
	MinAge    = 5
	MaxAge    = 100
	MinWeight = 30.0
	MaxWeight = 200.0
	MinHeight = 120.0
	MaxHeight = 220.0
)

// ErrInvalid is returned for profiles outside the accepted ranges or choices.
var ErrInvalid = errors.New("invalid profile")

// Gender is the user's self-reported gender.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// Goal is the outcome the plan should target.
type Goal string

const (
	WeightLoss     Goal = "weight_loss"
	MuscleGain     Goal = "muscle_gain"
	HealthyEating  Goal = "healthy_eating"
	MaintainWeight Goal = "maintain_weight"
)

// DietType restricts the food groups in the plan. The zero value means no preference.
type DietType string

const (
	AnyDiet       DietType = ""
	Vegetarian    DietType = "vegetarian"
	NonVegetarian DietType = "non_vegetarian"
	Vegan         DietType = "vegan"
)

// Genders lists the accepted genders in form order.
var Genders = []Gender{Male, Female, Other}

// Goals lists the accepted goals in form order.
var Goals = []Goal{WeightLoss, MuscleGain, HealthyEating, MaintainWeight}

// DietTypes lists the accepted diet types in form order, including no preference.
var DietTypes = []DietType{AnyDiet, Vegetarian, NonVegetarian, Vegan}

// Profile is the transient per-request input. It is never persisted.
type Profile struct {
	Age      int
	Gender   Gender
	WeightKg float64
	HeightCm float64
	Goal     Goal
	DietType DietType
}

// Validate checks ranges and choices the same way the input form restricts them.
func (p Profile) Validate() error {
	var problems []string
	if p.Age < MinAge || p.Age > MaxAge {
		problems = append(problems, fmt.Sprintf("age must be between %d and %d", MinAge, MaxAge))
	}
	if !inRange(p.WeightKg, MinWeight, MaxWeight) {
		problems = append(problems, fmt.Sprintf("weight must be between %g and %g kg", MinWeight, MaxWeight))
	}
	if !inRange(p.HeightCm, MinHeight, MaxHeight) {
		problems = append(problems, fmt.Sprintf("height must be between %g and %g cm", MinHeight, MaxHeight))
	}
	if !p.Gender.Valid() {
		problems = append(problems, fmt.Sprintf("unknown gender %q", p.Gender))
	}
	if !p.Goal.Valid() {
		problems = append(problems, fmt.Sprintf("unknown goal %q", p.Goal))
	}
	if !p.DietType.Valid() {
		problems = append(problems, fmt.Sprintf("unknown diet type %q", p.DietType))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// inRange is false for NaN.
func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}

// Valid reports whether g is one of the listed genders.
func (g Gender) Valid() bool {
	for _, known := range Genders {
		if g == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form of g.
func (g Gender) Label() string {
	return labelOf(string(g))
}

// Valid reports whether g is one of the listed goals.
func (g Goal) Valid() bool {
	for _, known := range Goals {
		if g == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form of g.
func (g Goal) Label() string {
	return labelOf(string(g))
}

// Valid reports whether d is one of the listed diet types or no preference.
func (d DietType) Valid() bool {
	for _, known := range DietTypes {
		if d == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable form of d, e.g. "Non-Vegetarian".
func (d DietType) Label() string {
	if d == AnyDiet {
		return "Any"
	}
	parts := strings.Split(string(d), "_")
	for i, part := range parts {
		parts[i] = capitalize(part)
	}
	return strings.Join(parts, "-")
}

// ParseGender accepts canonical values and labels, case-insensitively.
func ParseGender(s string) (Gender, error) {
	g := Gender(canonical(s))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown gender %q", ErrInvalid, s)
	}
	return g, nil
}

// ParseGoal accepts canonical values ("weight_loss") and labels ("Weight Loss").
func ParseGoal(s string) (Goal, error) {
	g := Goal(canonical(s))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown goal %q", ErrInvalid, s)
	}
	return g, nil
}

// ParseDietType accepts canonical values and labels; empty or "any" means no preference.
func ParseDietType(s string) (DietType, error) {
	c := canonical(s)
	if c == "any" || c == "none" {
		return AnyDiet, nil
	}
	d := DietType(c)
	if !d.Valid() {
		return "", fmt.Errorf("%w: unknown diet type %q", ErrInvalid, s)
	}
	return d, nil
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "_", " ")), "_")
}

func labelOf(value string) string {
	words := strings.Split(value, "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(word string) string {
	if word == "" {
		return ""
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
