package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"laundry/pkg/model"
	"laundry/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

// SeedData is the reference data file format:
//
//	{"houses": [...], "laundryRooms": [...]}
type SeedData struct {
	Houses       []model.House       `json:"houses" validate:"dive"`
	LaundryRooms []model.LaundryRoom `json:"laundryRooms" validate:"dive"`
}

func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes, normalizes and validates reference data. Duplicate ids
// are rejected.
func ParseSeed(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode seed data: %w", err)
	}

	for i := range data.Houses {
		sanitizer.NormalizeHouse(&data.Houses[i])
	}
	for i := range data.LaundryRooms {
		sanitizer.NormalizeLaundryRoom(&data.LaundryRooms[i])
	}

	if err := validator.New().Struct(&data); err != nil {
		return nil, fmt.Errorf("invalid seed data: %w", err)
	}

	houseIDs := make(map[model.HouseID]struct{}, len(data.Houses))
	for _, h := range data.Houses {
		if _, dup := houseIDs[h.ID]; dup {
			return nil, fmt.Errorf("invalid seed data: duplicate house id %d", h.ID)
		}
		houseIDs[h.ID] = struct{}{}
	}
	roomIDs := make(map[model.LaundryRoomID]struct{}, len(data.LaundryRooms))
	for _, r := range data.LaundryRooms {
		if _, dup := roomIDs[r.ID]; dup {
			return nil, fmt.Errorf("invalid seed data: duplicate laundry room id %d", r.ID)
		}
		roomIDs[r.ID] = struct{}{}
	}

	return &data, nil
}
