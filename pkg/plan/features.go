package plan

type PlanType string
type Feature string

const (
	FreePlan PlanType = "FREE"
	ProPlan  PlanType = "PRO"
)

const (
	UnlimitedFolders Feature = "unlimited_folders"
	CustomBanners    Feature = "custom_banners"
)

type PlanLimits struct {
	MaxFoldersPerWorkspace int
	MaxUploadSizeMB        int
	AllowedFeatures        map[Feature]bool
}

var PlanFeatures = map[PlanType]PlanLimits{
	FreePlan: {
		MaxFoldersPerWorkspace: 3,
		MaxUploadSizeMB:        5,
		AllowedFeatures: map[Feature]bool{
			UnlimitedFolders: false,
			CustomBanners:    false,
		},
	},
	ProPlan: {
		MaxFoldersPerWorkspace: 1000,
		MaxUploadSizeMB:        25,
		AllowedFeatures: map[Feature]bool{
			UnlimitedFolders: true,
			CustomBanners:    true,
		},
	},
}

func GetPlanLimits(planType PlanType) PlanLimits {
	if limits, ok := PlanFeatures[planType]; ok {
		return limits
	}
	return PlanFeatures[FreePlan]
}

func CanUseFeature(planType PlanType, feature Feature) bool {
	return GetPlanLimits(planType).AllowedFeatures[feature]
}
