package farm

// Degradation rates in percent per hour
const (
	WaterDecayRate      = 1.0
	FertilizerDecayRate = 0.8
	HealthDecayRate     = 0.3

	// Decay is applied for at most this many hours so an abandoned
	// crop bottoms out instead of going negative overnight.
	MaxEffectiveHours = 24.0

	// Below this water or fertilizer level health decays twice as fast
	NeglectThreshold = 30.0

	HealthFloor = 10.0

	// Base growth in percent per hour, before the climate bonus
	BaseGrowthRate = 25.0

	// Levels are persisted only when they moved by more than this
	PersistThreshold = 1.0
)

// Starting conditions for a freshly planted crop
const (
	StartingWaterLevel      = 60.0
	StartingHealth          = 75.0
	StartingFertilizerLevel = 40.0
	StartingCareScore       = 50.0
)

// XP rewards
const (
	PlantXP         = 20
	WaterBaseXP     = 8
	FertilizeBaseXP = 12
	HarvestBaseXP   = 50
)

const (
	DefaultCropCost    = 10
	MaxSimulationHours = 48

	// Care score EWMA weights on the previous score
	waterCareWeight      = 0.8
	fertilizerCareWeight = 0.7
)

// NASA POWER publishes daily values a few days behind, so the climate
// window for planting ends before today.
const (
	weatherLagDays    = 3
	weatherWindowDays = 7
)

const scorecardHistoryLimit = 20
