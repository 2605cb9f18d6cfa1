package progression

import (
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// achievementCatalog is the fixed set of unlockable achievements.
// IDs are stable, the unlock rows reference them by string.
var achievementCatalog = []domain.Achievement{
	{
		ID: "first_plant", Name: "Green Thumb",
		Description: "Plant your first crop", Icon: "🌱", Category: "beginner",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionPlant, Target: 1},
		RewardXP: 50, RewardCoins: 25,
	},
	{
		ID: "first_water", Name: "Hydration Hero",
		Description: "Water a plant for the first time", Icon: "💧", Category: "beginner",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionWater, Target: 1},
		RewardXP: 25, RewardCoins: 10,
	},
	{
		ID: "first_fertilize", Name: "Nutrition Expert",
		Description: "Fertilize a plant for the first time", Icon: "🌿", Category: "beginner",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionFertilize, Target: 1},
		RewardXP: 35, RewardCoins: 15,
	},
	{
		ID: "first_harvest", Name: "Harvest Master",
		Description: "Complete your first harvest", Icon: "🌾", Category: "beginner",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionHarvest, Target: 1},
		RewardXP: 100, RewardCoins: 50,
	},
	{
		ID: "plant_collector", Name: "Plant Collector",
		Description: "Plant 10 different crops", Icon: "🌻", Category: "quantity",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionPlant, Target: 10},
		RewardXP: 200, RewardCoins: 100,
	},
	{
		ID: "water_master", Name: "Water Master",
		Description: "Water plants 50 times", Icon: "🚿", Category: "quantity",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionWater, Target: 50},
		RewardXP: 300, RewardCoins: 150,
	},
	{
		ID: "fertilizer_expert", Name: "Fertilizer Expert",
		Description: "Use fertilizer 25 times", Icon: "🧪", Category: "quantity",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionFertilize, Target: 25},
		RewardXP: 250, RewardCoins: 125,
	},
	{
		ID: "harvest_champion", Name: "Harvest Champion",
		Description: "Complete 20 successful harvests", Icon: "🏆", Category: "quantity",
		Condition: domain.AchievementCondition{Type: domain.ConditionAction, Action: domain.CareActionHarvest, Target: 20},
		RewardXP: 500, RewardCoins: 250,
	},
	{
		ID: "daily_farmer", Name: "Daily Farmer",
		Description: "Farm for 7 consecutive days", Icon: "📅", Category: "consistency",
		Condition: domain.AchievementCondition{Type: domain.ConditionStreak, Target: 7},
		RewardXP: 300, RewardCoins: 150,
	},
	{
		ID: "dedicated_grower", Name: "Dedicated Grower",
		Description: "Farm for 30 consecutive days", Icon: "🗓️", Category: "consistency",
		Condition: domain.AchievementCondition{Type: domain.ConditionStreak, Target: 30},
		RewardXP: 1000, RewardCoins: 500,
	},
	{
		ID: "efficient_farmer", Name: "Efficient Farmer",
		Description: "Complete 5 perfect care sessions (95%+ efficiency)", Icon: "⭐", Category: "special",
		Condition: domain.AchievementCondition{Type: domain.ConditionEfficiency, Target: 5},
		RewardXP: 400, RewardCoins: 200,
	},
	{
		ID: "sustainability_advocate", Name: "Sustainability Advocate",
		Description: "Use organic fertilizer 15 times", Icon: "♻️", Category: "special",
		Condition: domain.AchievementCondition{Type: domain.ConditionQuality, Action: domain.CareActionFertilize, Quality: "organic", Target: 15},
		RewardXP: 350, RewardCoins: 175,
	},
	{
		ID: "premium_grower", Name: "Premium Grower",
		Description: "Use premium care products 10 times", Icon: "💎", Category: "special",
		Condition: domain.AchievementCondition{Type: domain.ConditionPremiumUsage, Target: 10},
		RewardXP: 600, RewardCoins: 300,
	},
	{
		ID: "coin_collector", Name: "Coin Collector",
		Description: "Earn 1000 coins total", Icon: "🪙", Category: "milestone",
		Condition: domain.AchievementCondition{Type: domain.ConditionTotalCoins, Target: 1000},
		RewardXP: 200, RewardCoins: 100,
	},
	{
		ID: "experience_master", Name: "Experience Master",
		Description: "Earn 2000 XP total", Icon: "📈", Category: "milestone",
		Condition: domain.AchievementCondition{Type: domain.ConditionTotalXP, Target: 2000},
		RewardXP: 300, RewardCoins: 150,
	},
	{
		ID: "level_five", Name: "Seasoned Farmer",
		Description: "Reach level 5", Icon: "🌟", Category: "milestone",
		Condition: domain.AchievementCondition{Type: domain.ConditionLevel, Target: 5},
		RewardXP: 500, RewardCoins: 250,
	},
	{
		ID: "level_ten", Name: "Expert Cultivator",
		Description: "Reach level 10", Icon: "🏅", Category: "milestone",
		Condition: domain.AchievementCondition{Type: domain.ConditionLevel, Target: 10},
		RewardXP: 1000, RewardCoins: 500,
	},
}

// AchievementCatalog returns the full catalog
func AchievementCatalog() []domain.Achievement {
	return achievementCatalog
}
