package farm

// WaterOption describes one watering tier
type WaterOption struct {
	Quality      string  `json:"quality"`
	Name         string  `json:"name"`
	Cost         int     `json:"cost"`
	WaterBoost   float64 `json:"water_boost"`
	HealthBoost  float64 `json:"health_boost"`
	QualityScore float64 `json:"quality_score"`
	Description  string  `json:"description"`
}

// FertilizerOption describes one fertilizer tier
type FertilizerOption struct {
	Type          string  `json:"type"`
	Name          string  `json:"name"`
	Cost          int     `json:"cost"`
	NutrientBoost float64 `json:"nutrient_boost"`
	HealthBoost   float64 `json:"health_boost"`
	QualityScore  float64 `json:"quality_score"`
	DurationDays  int     `json:"duration_days"`
	Description   string  `json:"description"`
}

var waterOptions = map[string]WaterOption{
	"basic": {
		Quality: "basic", Name: "Tap Water", Cost: 5,
		WaterBoost: 25, HealthBoost: 3, QualityScore: 60,
		Description: "Basic watering with tap water",
	},
	"premium": {
		Quality: "premium", Name: "Filtered Water", Cost: 12,
		WaterBoost: 40, HealthBoost: 8, QualityScore: 80,
		Description: "Purified water with optimal pH balance",
	},
	"expert": {
		Quality: "expert", Name: "Nutrient-Enhanced Water", Cost: 20,
		WaterBoost: 50, HealthBoost: 15, QualityScore: 95,
		Description: "Premium water with trace minerals",
	},
}

var fertilizerOptions = map[string]FertilizerOption{
	"basic": {
		Type: "basic", Name: "Basic NPK Fertilizer", Cost: 15,
		NutrientBoost: 30, HealthBoost: 8, QualityScore: 65, DurationDays: 7,
		Description: "Standard 10-10-10 fertilizer blend",
	},
	"organic": {
		Type: "organic", Name: "Organic Compost Blend", Cost: 25,
		NutrientBoost: 45, HealthBoost: 15, QualityScore: 85, DurationDays: 12,
		Description: "Slow-release organic nutrients from compost",
	},
	"premium": {
		Type: "premium", Name: "Expert Slow-Release Formula", Cost: 40,
		NutrientBoost: 60, HealthBoost: 25, QualityScore: 95, DurationDays: 18,
		Description: "Professional-grade controlled-release fertilizer",
	},
}

var cropCosts = map[string]int{
	"Tomato":  10,
	"Wheat":   5,
	"Corn":    15,
	"Carrot":  8,
	"Potato":  12,
	"Lettuce": 6,
}

// CropCost returns the planting cost for a crop type
func CropCost(name string) int {
	if cost, ok := cropCosts[name]; ok {
		return cost
	}
	return DefaultCropCost
}

// WaterOptionFor looks up a watering tier by quality level
func WaterOptionFor(quality string) (WaterOption, bool) {
	opt, ok := waterOptions[quality]
	return opt, ok
}

// FertilizerOptionFor looks up a fertilizer tier by type
func FertilizerOptionFor(fertilizerType string) (FertilizerOption, bool) {
	opt, ok := fertilizerOptions[fertilizerType]
	return opt, ok
}

// CareShop is the static catalog of care supplies and crop prices
type CareShop struct {
	WaterSupplies []WaterOption      `json:"water_supplies"`
	Fertilizers   []FertilizerOption `json:"fertilizers"`
	CropCosts     map[string]int     `json:"crop_costs"`
}

// Catalog returns the care shop in a stable tier order
func Catalog() *CareShop {
	shop := &CareShop{
		CropCosts: make(map[string]int, len(cropCosts)),
	}
	for _, quality := range []string{"basic", "premium", "expert"} {
		shop.WaterSupplies = append(shop.WaterSupplies, waterOptions[quality])
	}
	for _, fertilizerType := range []string{"basic", "organic", "premium"} {
		shop.Fertilizers = append(shop.Fertilizers, fertilizerOptions[fertilizerType])
	}
	for name, cost := range cropCosts {
		shop.CropCosts[name] = cost
	}
	return shop
}
