package services

import (
	"encoding/json"
	"fmt"

	"github.com/localnerve/starwars-api/internal/models"
	"gorm.io/gorm"
)

// SeedCharacter is a seeded character, linked to an address by name
type SeedCharacter struct {
	models.Character
	Address string `json:"address"`
}

// SeedData is the catalog loaded by the seed command
type SeedData struct {
	Addresses  []models.Address `json:"addresses"`
	Planets    []models.Planet  `json:"planets"`
	Characters []SeedCharacter  `json:"characters"`
	Vehicles   []models.Vehicle `json:"vehicles"`
}

// SeedResult counts the rows inserted per table
type SeedResult map[string]int

// ParseSeed decodes a seed document
func ParseSeed(raw []byte) (*SeedData, error) {
	var seed SeedData
	if err := json.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("invalid seed data: %w", err)
	}
	return &seed, nil
}

// Seed inserts the seed catalog. Records are matched by name,
// so running it twice inserts nothing the second time.
func Seed(db *gorm.DB, seed *SeedData) (SeedResult, error) {
	result := SeedResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		addressIDs := make(map[string]uint, len(seed.Addresses))
		for _, address := range seed.Addresses {
			address.ClearID()
			created, err := firstOrCreateByName(tx, &address, address.Name)
			if err != nil {
				return fmt.Errorf("seeding addresses: %w", err)
			}
			addressIDs[address.Name] = address.ID
			result["addresses"] += created
		}

		for _, planet := range seed.Planets {
			planet.ClearID()
			created, err := firstOrCreateByName(tx, &planet, planet.Name)
			if err != nil {
				return fmt.Errorf("seeding planets: %w", err)
			}
			result["planets"] += created
		}

		for _, sc := range seed.Characters {
			character := sc.Character
			character.ClearID()
			if sc.Address != "" {
				id, ok := addressIDs[sc.Address]
				if !ok {
					return fmt.Errorf("seeding characters: %s references unknown address %q", character.Name, sc.Address)
				}
				character.AddressID = &id
			}
			created, err := firstOrCreateByName(tx, &character, character.Name)
			if err != nil {
				return fmt.Errorf("seeding characters: %w", err)
			}
			result["characters"] += created
		}

		for _, vehicle := range seed.Vehicles {
			vehicle.ClearID()
			created, err := firstOrCreateByName(tx, &vehicle, vehicle.Name)
			if err != nil {
				return fmt.Errorf("seeding vehicles: %w", err)
			}
			result["vehicles"] += created
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// firstOrCreateByName loads the record named name into dest, creating it from dest when absent.
// It returns 1 when a row was inserted.
func firstOrCreateByName(tx *gorm.DB, dest interface{}, name string) (int, error) {
	var count int64
	if err := tx.Model(dest).Where("name = ?", name).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, tx.Where("name = ?", name).First(dest).Error
	}
	return 1, tx.Create(dest).Error
}
