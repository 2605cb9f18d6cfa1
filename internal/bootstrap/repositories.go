package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/database/postgres"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User        repository.User
	Crop        repository.Crop
	Farm        repository.Farm
	CareLog     repository.CareLog
	Scenario    repository.Scenario
	Progress    repository.Progress
	Achievement repository.Achievement
	Shop        repository.Shop
	Education   repository.Education

	// FarmTx is the crop repository again, exposed as the transaction
	// opener the farm service uses for harvest settlement.
	FarmTx repository.FarmTxBeginner
}

// InitializeRepositories creates all repository implementations.
// Every repository only needs the database pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	cropRepo := postgres.NewCropRepository(dbPool)
	return &Repositories{
		User:        postgres.NewUserRepository(dbPool),
		Crop:        cropRepo,
		Farm:        postgres.NewFarmRepository(dbPool),
		CareLog:     postgres.NewCareLogRepository(dbPool),
		Scenario:    postgres.NewScenarioRepository(dbPool),
		Progress:    postgres.NewProgressRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		Shop:        postgres.NewShopRepository(dbPool),
		Education:   postgres.NewEducationRepository(dbPool),
		FarmTx:      cropRepo,
	}
}
