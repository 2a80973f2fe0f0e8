package app

import (
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/talkincode/toughshop/internal/catalog"
	"github.com/talkincode/toughshop/internal/domain"
	"github.com/talkincode/toughshop/pkg/common"
)

// defaultProducts is the built-in pet supply catalog
func defaultProducts() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Name: "Premium Cat Food", Price: 980, Category: "food"},
		{ID: 2, Name: "Pet Water Fountain", Price: 1250, Category: "accessories"},
		{ID: 3, Name: "Cat Tunnel Toy", Price: 650, Category: "toy"},
		{ID: 4, Name: "Dog Dental Chews", Price: 320, Category: "food"},
		{ID: 5, Name: "Automatic Pet Feeder", Price: 1450, Category: "accessories"},
		{ID: 6, Name: "Cat Litter Box", Price: 550, Category: "accessories"},
	}
}

// seedProducts returns the configured CSV catalog, or the built-in one
func (a *Application) seedProducts() []*domain.Product {
	seedFile := a.appConfig.Catalog.SeedFile
	if common.IsEmptyOrNA(seedFile) {
		return defaultProducts()
	}
	f, err := os.Open(seedFile)
	if err != nil {
		zap.L().Error("failed to open catalog seed file", zap.String("file", seedFile), zap.Error(err))
		return defaultProducts()
	}
	defer f.Close()

	products, err := catalog.ImportCSV(f)
	if err != nil {
		zap.L().Error("failed to import catalog seed file", zap.String("file", seedFile), zap.Error(err))
		return defaultProducts()
	}
	return products
}

// checkProducts initializes catalog products missing by name
func (a *Application) checkProducts() {
	for _, p := range a.seedProducts() {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count > 0 {
			continue
		}
		if p.ID != 0 {
			// keep the seed id unless a different product already owns it
			a.gormDB.Model(&domain.Product{}).Where("id = ?", p.ID).Count(&count)
			if count > 0 {
				p.ID = 0
			}
		}
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(p).Error; err != nil {
			zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
		} else {
			zap.L().Info("initialized default product", zap.String("name", p.Name), zap.Int64("id", p.ID))
		}
	}
}
