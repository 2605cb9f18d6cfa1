package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Business Metrics
var (
	CropsPlanted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsPlanted,
			Help: HelpTextCropsPlanted,
		},
		[]string{LabelCrop},
	)

	CropsWatered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsWatered,
			Help: HelpTextCropsWatered,
		},
		[]string{LabelQuality},
	)

	CropsFertilized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsFertilized,
			Help: HelpTextCropsFertilized,
		},
		[]string{LabelQuality},
	)

	CropsHarvested = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCropsHarvested,
			Help: HelpTextCropsHarvested,
		},
		[]string{LabelCrop},
	)

	ScenariosGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScenariosGenerated,
			Help: HelpTextScenariosGenerated,
		},
		[]string{LabelType},
	)

	ScenariosResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameScenariosResolved,
			Help: HelpTextScenariosResolved,
		},
		[]string{LabelOutcome},
	)

	AchievementsUnlocked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
	)

	ShopPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShopPurchases,
			Help: HelpTextShopPurchases,
		},
		[]string{LabelCategory},
	)

	CoinsEarned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsEarned,
			Help: HelpTextCoinsEarned,
		},
	)

	CoinsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCoinsSpent,
			Help: HelpTextCoinsSpent,
		},
	)

	WeatherFetchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWeatherFetchErrors,
			Help: HelpTextWeatherFetchErrors,
		},
	)
)
