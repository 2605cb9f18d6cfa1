package education

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Tier boundaries used when bucketing plant state for the content hash.
// Buckets keep the hash stable across small level fluctuations so content
// is only regenerated when the farm meaningfully changes.
func healthTier(health float64) string {
	switch {
	case health >= 80:
		return "excellent"
	case health >= 60:
		return "good"
	case health >= 40:
		return "fair"
	default:
		return "poor"
	}
}

func levelTier(level float64) string {
	switch {
	case level >= 70:
		return "high"
	case level >= 40:
		return "medium"
	default:
		return "low"
	}
}

type hashedPlant struct {
	Type           string `json:"type"`
	HealthTier     string `json:"health_tier"`
	WaterTier      string `json:"water_tier"`
	FertilizerTier string `json:"fertilizer_tier"`
}

type hashedState struct {
	Lat    float64       `json:"lat"`
	Lon    float64       `json:"lon"`
	Plants []hashedPlant `json:"plants"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// ContentHash fingerprints the farm state the educational content was
// generated for. Plants are sorted so ordering never changes the hash.
func ContentHash(crops []domain.Crop, lat, lon float64) string {
	sorted := make([]domain.Crop, len(crops))
	copy(sorted, crops)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Health < sorted[j].Health
	})

	state := hashedState{
		Lat:    round4(lat),
		Lon:    round4(lon),
		Plants: make([]hashedPlant, 0, len(sorted)),
	}
	for _, c := range sorted {
		state.Plants = append(state.Plants, hashedPlant{
			Type:           c.Name,
			HealthTier:     healthTier(c.Health),
			WaterTier:      levelTier(c.WaterLevel),
			FertilizerTier: levelTier(c.FertilizerLevel),
		})
	}

	encoded, _ := json.Marshal(state)
	return fmt.Sprintf("%x", md5.Sum(encoded))
}
