package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
)

func TestProjectService_UpdateFinancialConfig(t *testing.T) {
	tests := []struct {
		name    string
		patch   repository.FinancialConfigPatch
		wantErr error
	}{
		{"valid fee percent", repository.FinancialConfigPatch{FeePercent: fptr(15)}, nil},
		{"fee percent over 100", repository.FinancialConfigPatch{FeePercent: fptr(101)}, ErrInvalidInput},
		{"negative fee percent", repository.FinancialConfigPatch{FeePercent: fptr(-1)}, ErrInvalidInput},
		{"negative working budget", repository.FinancialConfigPatch{WorkingBudget: fptr(-500)}, ErrInvalidInput},
		{"zero exchange rate", repository.FinancialConfigPatch{ExchangeRate: fptr(0)}, ErrInvalidInput},
		{"valid full patch", repository.FinancialConfigPatch{FeePercent: fptr(10), WorkingBudget: fptr(800), ExchangeRate: fptr(285)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projects := newFakeProjects(&model.Project{ID: 1, Name: "Dashboard", Currency: "USD"})
			svc := NewProjectService(projects, newFakeCache(), zap.NewNop())

			got, err := svc.UpdateFinancialConfig(context.Background(), 1, tt.patch)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdateFinancialConfig() error = %v", err)
			}
			if tt.patch.FeePercent != nil && (got.FeePercent == nil || *got.FeePercent != *tt.patch.FeePercent) {
				t.Errorf("FeePercent = %v, want %v", got.FeePercent, *tt.patch.FeePercent)
			}
			if tt.patch.WorkingBudget != nil && (got.WorkingBudget == nil || *got.WorkingBudget != *tt.patch.WorkingBudget) {
				t.Errorf("WorkingBudget = %v, want %v", got.WorkingBudget, *tt.patch.WorkingBudget)
			}
		})
	}

	t.Run("unknown project", func(t *testing.T) {
		svc := NewProjectService(newFakeProjects(), newFakeCache(), zap.NewNop())
		_, err := svc.UpdateFinancialConfig(context.Background(), 99, repository.FinancialConfigPatch{FeePercent: fptr(10)})
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestProjectService_UpdateInvalidatesOverviewCache(t *testing.T) {
	projects := newFakeProjects(&model.Project{ID: 1, Name: "Dashboard", Currency: "USD"})
	svc := NewProjectService(projects, newFakeCache(), zap.NewNop())
	fc := svc.cache.(*fakeCache)
	fc.Set(context.Background(), CacheKeyOverview, &AccountsOverview{TotalRevenue: 1})

	if _, err := svc.UpdateFinancialConfig(context.Background(), 1, repository.FinancialConfigPatch{FeePercent: fptr(12)}); err != nil {
		t.Fatalf("UpdateFinancialConfig() error = %v", err)
	}

	if _, ok := fc.store[CacheKeyOverview]; ok {
		t.Errorf("overview still cached under %q after financial config update", CacheKeyOverview)
	}
}

func TestProjectService_PartialPatchKeepsOtherFields(t *testing.T) {
	projects := newFakeProjects(&model.Project{
		ID: 1, Currency: "USD",
		FeePercent:    fptr(10),
		WorkingBudget: fptr(900),
	})
	svc := NewProjectService(projects, newFakeCache(), zap.NewNop())

	got, err := svc.UpdateFinancialConfig(context.Background(), 1, repository.FinancialConfigPatch{FeePercent: fptr(20)})
	if err != nil {
		t.Fatalf("UpdateFinancialConfig() error = %v", err)
	}
	if got.FeePercent == nil || *got.FeePercent != 20 {
		t.Errorf("FeePercent = %v, want 20", got.FeePercent)
	}
	if got.WorkingBudget == nil || *got.WorkingBudget != 900 {
		t.Errorf("WorkingBudget = %v, want 900 (untouched)", got.WorkingBudget)
	}
}
