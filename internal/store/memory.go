package store

import (
	"context"

	"github.com/avaolo/agri-gateway/internal/domain"
)

// MemoryFarmerStore serves the directory from a fixed in-memory slice.
// It is the fallback when no database is configured or reachable, so the
// UI bridge keeps working against representative data.
type MemoryFarmerStore struct {
	farmers []domain.Farmer
}

// NewMemoryFarmerStore creates a store seeded with representative
// Croatian farms.
func NewMemoryFarmerStore() *MemoryFarmerStore {
	return &MemoryFarmerStore{farmers: seedFarmers()}
}

var _ FarmerStore = (*MemoryFarmerStore)(nil)

// ListFarmers implements FarmerStore.ListFarmers.
func (s *MemoryFarmerStore) ListFarmers(_ context.Context, limit int) ([]domain.Farmer, error) {
	if limit <= 0 || limit > len(s.farmers) {
		limit = len(s.farmers)
	}
	out := make([]domain.Farmer, limit)
	copy(out, s.farmers[:limit])
	return out, nil
}

// GetFarmer implements FarmerStore.GetFarmer.
func (s *MemoryFarmerStore) GetFarmer(_ context.Context, id int64) (domain.Farmer, error) {
	for _, f := range s.farmers {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.Farmer{}, ErrFarmerNotFound
}

func seedFarmers() []domain.Farmer {
	return []domain.Farmer{
		{ID: 1, Name: "Marko Horvat", FarmName: "Horvat Farm", Phone: "385912345678", Location: "Zagreb", FarmType: "Arable crops", TotalSizeHa: 45.5},
		{ID: 2, Name: "Ana Novak", FarmName: "Novak Vineyard", Phone: "385987654321", Location: "Split", FarmType: "Winegrower", TotalSizeHa: 12.3},
		{ID: 3, Name: "Ivo Petrovic", FarmName: "Petrovic Vegetables", Phone: "385911223344", Location: "Osijek", FarmType: "Vegetable grower", TotalSizeHa: 8.7},
		{ID: 4, Name: "Petra Babic", FarmName: "Babic Grain Co.", Phone: "385923456789", Location: "Slavonski Brod", FarmType: "Grain production", TotalSizeHa: 120.0},
		{ID: 5, Name: "Milan Jovanovic", FarmName: "Jovanovic Livestock", Phone: "385934567890", Location: "Vukovar", FarmType: "Livestock", TotalSizeHa: 85.3},
		{ID: 6, Name: "Dragana Milic", FarmName: "Milic Organic Farm", Phone: "385945678901", Location: "Rijeka", FarmType: "Organic farming", TotalSizeHa: 28.7},
	}
}
