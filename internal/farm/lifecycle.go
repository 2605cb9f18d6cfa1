package farm

import (
	"math"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// ApplyDecay degrades water, fertilizer and health based on how long the
// crop has gone without care. Decay stops accumulating after
// MaxEffectiveHours so levels settle instead of draining forever.
// The crop is mutated, and true returned, only when at least one level
// moved by more than PersistThreshold.
func ApplyDecay(crop *domain.Crop, now time.Time) bool {
	age := now.Sub(crop.PlantedAt).Hours()
	if age <= 0 {
		return false
	}
	effective := math.Min(age, MaxEffectiveHours)

	newWater := math.Max(0, crop.WaterLevel-WaterDecayRate*effective)
	newFertilizer := math.Max(0, crop.FertilizerLevel-FertilizerDecayRate*effective)

	healthRate := HealthDecayRate
	if newWater < NeglectThreshold || newFertilizer < NeglectThreshold {
		healthRate *= 2
	}
	newHealth := math.Max(HealthFloor, crop.Health-healthRate*effective)

	changed := math.Abs(newWater-crop.WaterLevel) > PersistThreshold ||
		math.Abs(newFertilizer-crop.FertilizerLevel) > PersistThreshold ||
		math.Abs(newHealth-crop.Health) > PersistThreshold
	if !changed {
		return false
	}

	crop.WaterLevel = newWater
	crop.FertilizerLevel = newFertilizer
	crop.Health = newHealth
	return true
}

// ApplyGrowth advances the growth stage from time since planting and the
// fixed climate bonus. Returns true when the stage moved.
func ApplyGrowth(crop *domain.Crop, now time.Time) bool {
	if crop.GrowthStage >= 100 {
		return false
	}
	hours := now.Sub(crop.PlantedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	newGrowth := math.Min(100, hours*BaseGrowthRate*(1.0+crop.ClimateBonus))
	if newGrowth == crop.GrowthStage {
		return false
	}
	crop.GrowthStage = newGrowth
	return true
}

// SimulateHours applies the given number of hours of degradation directly,
// ignoring the effective-hours cap. The neglect check uses the levels
// before the simulated losses.
func SimulateHours(crop *domain.Crop, hours float64) {
	waterLoss := hours * WaterDecayRate
	fertilizerLoss := hours * FertilizerDecayRate
	healthLoss := hours * HealthDecayRate
	if crop.WaterLevel < NeglectThreshold || crop.FertilizerLevel < NeglectThreshold {
		healthLoss *= 2
	}
	crop.WaterLevel = math.Max(0, crop.WaterLevel-waterLoss)
	crop.FertilizerLevel = math.Max(0, crop.FertilizerLevel-fertilizerLoss)
	crop.Health = math.Max(HealthFloor, crop.Health-healthLoss)
}

// WaterEfficiency scores a watering session. Watering a thirsty plant is
// more efficient than topping up a saturated one.
func WaterEfficiency(opt WaterOption, waterLevel float64) float64 {
	needFactor := math.Max(0.5, (100-waterLevel)/100)
	return opt.QualityScore * needFactor
}

// FertilizerEffectiveness scores a fertilizer application from the crop's
// growth stage, water synergy and an over-fertilization penalty. The growth
// factor tops out at 1.5 for a fully grown crop, so the top reward band
// needs both a grown crop and adequate water.
func FertilizerEffectiveness(crop *domain.Crop) float64 {
	growthFactor := 1.0 + (crop.GrowthStage/100)*0.5
	waterSynergy := 0.7 + (crop.WaterLevel/100)*0.3
	penalty := 1.0
	if crop.FertilizerLevel > 80 {
		penalty = 0.6
	}
	return growthFactor * waterSynergy * penalty
}

// WaterBonusXP maps a watering efficiency score to its XP bonus and rating
func WaterBonusXP(efficiency float64) (int, string) {
	switch {
	case efficiency >= 85:
		return 5, "Excellent"
	case efficiency >= 70:
		return 3, "Good"
	default:
		return 1, "Adequate"
	}
}

// FertilizerBonusXP maps an effectiveness multiplier to its XP bonus and rating
func FertilizerBonusXP(effectiveness float64) (int, string) {
	switch {
	case effectiveness >= 1.3:
		return 8, "Perfectly Timed"
	case effectiveness >= 1.0:
		return 5, "Good Application"
	case effectiveness >= 0.8:
		return 2, "Adequate"
	default:
		return 0, "Inefficient"
	}
}

// HarvestRewards computes the XP and coins for harvesting at the given health
func HarvestRewards(health float64) (xp, coins int) {
	healthBonus := int(health / 100 * 50)
	xp = HarvestBaseXP + healthBonus
	coins = 2 * xp
	return xp, coins
}
