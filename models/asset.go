package models

import (
	"time"
)

// AssetType enum
type AssetType string

const (
	AssetTypeVehicle    AssetType = "vehicle"
	AssetTypeWeapon     AssetType = "weapon"
	AssetTypeAmmunition AssetType = "ammunition"
	AssetTypeEquipment  AssetType = "equipment"
)

// IsValid reports whether t is a known asset type.
func (t AssetType) IsValid() bool {
	switch t {
	case AssetTypeVehicle, AssetTypeWeapon, AssetTypeAmmunition, AssetTypeEquipment:
		return true
	}
	return false
}

// AssetStatus enum
type AssetStatus string

const (
	StatusAvailable      AssetStatus = "available"
	StatusAssigned       AssetStatus = "assigned"
	StatusMaintenance    AssetStatus = "maintenance"
	StatusDecommissioned AssetStatus = "decommissioned"
)

// IsValid reports whether s is a known asset status.
func (s AssetStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusAssigned, StatusMaintenance, StatusDecommissioned:
		return true
	}
	return false
}

// Asset model. SerialNumber is nullable so the unique index only applies
// to assets that carry one.
type Asset struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	Name             string      `gorm:"not null" json:"name"`
	Type             AssetType   `gorm:"not null" json:"type"`
	SerialNumber     *string     `gorm:"uniqueIndex" json:"serialNumber,omitempty"`
	Status           AssetStatus `gorm:"default:available" json:"status"`
	Quantity         int         `gorm:"not null" json:"quantity"`
	AssignedQuantity int         `gorm:"default:0" json:"assignedQuantity"`
	Base             string      `gorm:"not null;index" json:"base"`
	Notes            string      `json:"notes,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Asset) TableName() string {
	return "assets"
}
