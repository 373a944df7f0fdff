package engine

import (
	"fmt"
	"math"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

const ratioTolerance = 0.01

// CheckMix reports advisory problems with the cafe ratios. It never alters
// the configuration and the calculator runs regardless of its output.
func CheckMix(cafe models.CafeConfig) []string {
	warnings := []string{}

	sum := cafe.RatioAmericano + cafe.RatioLatte + cafe.RatioSyrupLatte
	if math.Abs(sum-1) >= ratioTolerance {
		warnings = append(warnings, fmt.Sprintf("menu mix ratios sum to %.2f, expected 1.00", sum))
	}

	ratios := []struct {
		name  string
		value float64
	}{
		{"ratioAmericano", cafe.RatioAmericano},
		{"ratioLatte", cafe.RatioLatte},
		{"ratioSyrupLatte", cafe.RatioSyrupLatte},
		{"takeoutRatio", cafe.TakeoutRatio},
		{"iceRatio", cafe.IceRatio},
	}
	for _, r := range ratios {
		if r.value < 0 || r.value > 1 {
			warnings = append(warnings, fmt.Sprintf("%s %.2f is outside [0, 1]", r.name, r.value))
		}
	}
	return warnings
}
