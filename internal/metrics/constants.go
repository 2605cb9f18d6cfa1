package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameCropsPlanted        = "crops_planted_total"
	MetricNameCropsWatered        = "crops_watered_total"
	MetricNameCropsFertilized     = "crops_fertilized_total"
	MetricNameCropsHarvested      = "crops_harvested_total"
	MetricNameScenariosGenerated  = "scenarios_generated_total"
	MetricNameScenariosResolved   = "scenarios_resolved_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameShopPurchases       = "shop_purchases_total"
	MetricNameCoinsEarned         = "coins_earned_total"
	MetricNameCoinsSpent          = "coins_spent_total"
	MetricNameWeatherFetchErrors  = "weather_fetch_errors_total"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelCrop     = "crop"
	LabelQuality  = "quality"
	LabelType     = "type"
	LabelOutcome  = "outcome"
	LabelCategory = "category"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextCropsPlanted         = "Total number of crops planted"
	HelpTextCropsWatered         = "Total number of watering sessions"
	HelpTextCropsFertilized      = "Total number of fertilizing sessions"
	HelpTextCropsHarvested       = "Total number of crops harvested"
	HelpTextScenariosGenerated   = "Total number of weather scenarios generated"
	HelpTextScenariosResolved    = "Total number of scenario action attempts"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextShopPurchases        = "Total number of shop purchases"
	HelpTextCoinsEarned          = "Total coins credited to players"
	HelpTextCoinsSpent           = "Total coins debited from players"
	HelpTextWeatherFetchErrors   = "Total number of failed NASA POWER fetches"
)

// HTTPLatencyBuckets covers fast cache hits through slow LLM-backed calls
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}
