package profile

import (
	"errors"
	"math"
	"testing"
)

func validProfile() Profile {
	return Profile{Age: 25, Gender: Male, WeightKg: 70, HeightCm: 170, Goal: WeightLoss}
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{name: "valid without diet type", mutate: func(*Profile) {}},
		{name: "valid vegan", mutate: func(p *Profile) { p.DietType = Vegan }},
		{name: "age lower bound", mutate: func(p *Profile) { p.Age = MinAge }},
		{name: "age too low", mutate: func(p *Profile) { p.Age = 4 }, wantErr: true},
		{name: "age too high", mutate: func(p *Profile) { p.Age = 101 }, wantErr: true},
		{name: "weight too low", mutate: func(p *Profile) { p.WeightKg = 29.9 }, wantErr: true},
		{name: "weight NaN", mutate: func(p *Profile) { p.WeightKg = math.NaN() }, wantErr: true},
		{name: "height NaN", mutate: func(p *Profile) { p.HeightCm = math.NaN() }, wantErr: true},
		{name: "weight infinite", mutate: func(p *Profile) { p.WeightKg = math.Inf(1) }, wantErr: true},
		{name: "height too high", mutate: func(p *Profile) { p.HeightCm = 221 }, wantErr: true},
		{name: "unknown gender", mutate: func(p *Profile) { p.Gender = "robot" }, wantErr: true},
		{name: "empty goal", mutate: func(p *Profile) { p.Goal = "" }, wantErr: true},
		{name: "unknown diet", mutate: func(p *Profile) { p.DietType = "keto" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Fatalf("error %v should wrap ErrInvalid", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if g, err := ParseGoal("Weight Loss"); err != nil || g != WeightLoss {
		t.Fatalf("ParseGoal(label) = %q, %v", g, err)
	}
	if g, err := ParseGoal("maintain-weight"); err != nil || g != MaintainWeight {
		t.Fatalf("ParseGoal(dashed) = %q, %v", g, err)
	}
	if _, err := ParseGoal("bulk"); err == nil {
		t.Fatal("expected error for unknown goal")
	}
	if g, err := ParseGender(" Female "); err != nil || g != Female {
		t.Fatalf("ParseGender() = %q, %v", g, err)
	}
	if d, err := ParseDietType("Non-Vegetarian"); err != nil || d != NonVegetarian {
		t.Fatalf("ParseDietType(label) = %q, %v", d, err)
	}
	if d, err := ParseDietType(""); err != nil || d != AnyDiet {
		t.Fatalf("ParseDietType(empty) = %q, %v", d, err)
	}
	if d, err := ParseDietType("any"); err != nil || d != AnyDiet {
		t.Fatalf("ParseDietType(any) = %q, %v", d, err)
	}
}

func TestLabels(t *testing.T) {
	if got := WeightLoss.Label(); got != "Weight Loss" {
		t.Fatalf("Goal label = %q", got)
	}
	if got := NonVegetarian.Label(); got != "Non-Vegetarian" {
		t.Fatalf("DietType label = %q", got)
	}
	if got := Other.Label(); got != "Other" {
		t.Fatalf("Gender label = %q", got)
	}
}
