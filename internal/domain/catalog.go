package domain

import (
	"fmt"
	"path"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind is the type tag of a polymorphic product reference.
type ProductKind string

const (
	KindVideoGame ProductKind = "videogame"
	KindConsole   ProductKind = "console"
	KindAccessory ProductKind = "accessory"
)

var uploadDirs = map[ProductKind]string{
	KindVideoGame: "videojuegos/",
	KindConsole:   "consolas/",
	KindAccessory: "accesorios/",
}

func ParseProductKind(s string) (ProductKind, error) {
	k := ProductKind(s)
	if _, ok := uploadDirs[k]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownProductKind, s)
	}
	return k, nil
}

// UploadDir returns the directory, relative to the media root, that holds
// images of the given kind.
func UploadDir(k ProductKind) string {
	return uploadDirs[k]
}

// ImagePath joins a bare file name onto the kind's upload directory.
func ImagePath(k ProductKind, filename string) string {
	return path.Join(UploadDir(k), path.Base(filename))
}

// ProductRef points at one row of one of the three catalog tables.
type ProductRef struct {
	Kind ProductKind `json:"kind"`
	ID   uint64      `json:"id"`
}

func (r ProductRef) String() string {
	return fmt.Sprintf("%s#%d", r.Kind, r.ID)
}

// Product is the read view shared by the catalog entities. The entities
// themselves stay in separate tables.
type Product interface {
	Ref() ProductRef
	Title() string
	ListPrice() decimal.Decimal
	StockCount() int
}

// CatalogEntity constrains the generic catalog code to the three tables.
type CatalogEntity interface {
	VideoGame | Console | Accessory
	Product
}

// ResetManaged clears the fields that only the store assigns: the primary
// key and the image path, which is set through ImagePath alone.
func ResetManaged[T CatalogEntity](p *T) {
	switch v := any(p).(type) {
	case *VideoGame:
		v.ID, v.ImagePath = 0, nil
	case *Console:
		v.ID, v.ImagePath = 0, nil
	case *Accessory:
		v.ID, v.ImagePath = 0, nil
	}
}

type VideoGame struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Developer   string          `json:"developer" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Genre       string          `json:"genre" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	ReleaseDate time.Time       `json:"releaseDate" gorm:"type:date;not null" validate:"required"`
	Provider    string          `json:"provider" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"price"`
	Stock       int             `json:"stock" gorm:"not null;default:0" validate:"min=0"`
	ImagePath   *string         `json:"imagePath,omitempty" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
}

func (VideoGame) TableName() string { return "video_games" }

func (g VideoGame) Ref() ProductRef { return ProductRef{Kind: KindVideoGame, ID: g.ID} }
func (g VideoGame) Title() string { return g.Name }
func (g VideoGame) ListPrice() decimal.Decimal { return g.Price }
func (g VideoGame) StockCount() int { return g.Stock }

type Console struct {
	ID          uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"price"`
	ReleaseDate time.Time       `json:"releaseDate" gorm:"type:date;not null" validate:"required"`
	Resolution  string          `json:"resolution" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Color       string          `json:"color" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	StorageType string          `json:"storageType" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	StorageSize string          `json:"storageSize" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Stock       int             `json:"stock" gorm:"not null;default:0" validate:"min=0"`
	ImagePath   *string         `json:"imagePath,omitempty" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
}

func (Console) TableName() string { return "consoles" }

func (c Console) Ref() ProductRef { return ProductRef{Kind: KindConsole, ID: c.ID} }
func (c Console) Title() string { return c.Name }
func (c Console) ListPrice() decimal.Decimal { return c.Price }
func (c Console) StockCount() int { return c.Stock }

type Accessory struct {
	ID            uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Category      string          `json:"category" gorm:"type:varchar(100);not null" validate:"required,max=100"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null" validate:"price"`
	Compatibility string          `json:"compatibility" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Color         string          `json:"color" gorm:"type:varchar(50);not null" validate:"required,max=50"`
	Provider      string          `json:"provider" gorm:"type:varchar(255);not null" validate:"required,max=255"`
	Stock         int             `json:"stock" gorm:"not null;default:0" validate:"min=0"`
	ImagePath     *string         `json:"imagePath,omitempty" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
}

func (Accessory) TableName() string { return "accessories" }

func (a Accessory) Ref() ProductRef { return ProductRef{Kind: KindAccessory, ID: a.ID} }
func (a Accessory) Title() string { return a.Name }
func (a Accessory) ListPrice() decimal.Decimal { return a.Price }
func (a Accessory) StockCount() int { return a.Stock }
