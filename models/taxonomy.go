package models

import "gorm.io/gorm"

// The five nutrient taxonomies. Codes are the stable join keys toward
// the generic Nutrient table and must stay unique within each table.

type Vitamin struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"` // e.g. VITC
	Name        string `gorm:"size:100;not null"`
	Unit        string `gorm:"size:20"` // mg, µg, IU
	HexColor    string `gorm:"size:10"`
	HomeDisplay bool
}

type Mineral struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"` // e.g. MIN_FE
	Name        string `gorm:"size:100;not null"`
	Unit        string `gorm:"size:20"`
	HexColor    string `gorm:"size:10"`
	HomeDisplay bool
}

// Amino acids carry no unit column; they are always tracked in mg.
type AminoAcid struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"` // e.g. LEU
	Name        string `gorm:"size:100;not null"`
	HexColor    string `gorm:"size:10"`
	HomeDisplay bool
}

type Fiber struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"` // e.g. FIBTG
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Unit        string `gorm:"size:20"`
	HexColor    string `gorm:"size:10"`
	HomeDisplay bool
}

type FattyAcid struct {
	gorm.Model
	Code        string `gorm:"size:50;uniqueIndex;not null"` // e.g. FAMS
	Name        string `gorm:"size:100;not null"`
	Unit        string `gorm:"size:20"`
	HexColor    string `gorm:"size:10"`
	HomeDisplay bool
}
