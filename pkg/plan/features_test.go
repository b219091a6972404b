package plan

import "testing"

func TestGetPlanLimits(t *testing.T) {
	t.Parallel()

	free := GetPlanLimits(FreePlan)
	if free.MaxFoldersPerWorkspace != 3 {
		t.Errorf("free MaxFoldersPerWorkspace = %d, want 3", free.MaxFoldersPerWorkspace)
	}

	pro := GetPlanLimits(ProPlan)
	if pro.MaxFoldersPerWorkspace <= free.MaxFoldersPerWorkspace {
		t.Error("pro folder limit should exceed free limit")
	}
	if pro.MaxUploadSizeMB <= free.MaxUploadSizeMB {
		t.Error("pro upload limit should exceed free limit")
	}
}

func TestGetPlanLimits_UnknownFallsBackToFree(t *testing.T) {
	t.Parallel()

	limits := GetPlanLimits(PlanType("ENTERPRISE"))
	if limits.MaxFoldersPerWorkspace != GetPlanLimits(FreePlan).MaxFoldersPerWorkspace {
		t.Error("unknown plan should fall back to free limits")
	}
}

func TestCanUseFeature(t *testing.T) {
	t.Parallel()

	tests := []struct {
		plan    PlanType
		feature Feature
		want    bool
	}{
		{FreePlan, UnlimitedFolders, false},
		{FreePlan, CustomBanners, false},
		{ProPlan, UnlimitedFolders, true},
		{ProPlan, CustomBanners, true},
		{ProPlan, Feature("unknown"), false},
	}

	for _, tt := range tests {
		if got := CanUseFeature(tt.plan, tt.feature); got != tt.want {
			t.Errorf("CanUseFeature(%s, %s) = %v, want %v", tt.plan, tt.feature, got, tt.want)
		}
	}
}
