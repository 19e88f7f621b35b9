// Package usecase contains application-level services.
package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tesso57/dietplan/internal/domain/profile"
)

// mealStructure is the fixed outline every provider is asked to follow.
var mealStructure = []string{
	"Breakfast",
	"Mid-morning Snack",
	"Lunch",
	"Evening Snack",
	"Dinner",
	"Hydration Tips",
}

// BuildPrompt renders a validated profile into the nutritionist instruction.
func BuildPrompt(p profile.Profile) string {
	plan := "daily diet plan"
	if p.DietType != profile.AnyDiet {
		plan = fmt.Sprintf("daily %s diet plan", p.DietType.Label())
	}

	structure := make([]string, 0, len(mealStructure))
	for _, item := range mealStructure {
		structure = append(structure, "- "+item)
	}

	return strings.Join([]string{
		"You are an expert nutritionist.",
		fmt.Sprintf(
			"Create a detailed %s for a %d year old %s who weighs %skg and is %scm tall. Their goal is %s.",
			plan,
			p.Age,
			strings.ToLower(p.Gender.Label()),
			formatNumber(p.WeightKg),
			formatNumber(p.HeightCm),
			strings.ToLower(p.Goal.Label()),
		),
		"",
		"Structure:",
		strings.Join(structure, "\n"),
		"",
		"Make it simple, practical, and balanced.",
	}, "\n")
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
