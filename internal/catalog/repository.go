package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/talkincode/toughshop/internal/domain"
)

// ErrProductNotFound is returned when no product has the requested id
var ErrProductNotFound = errors.New("product not found")

// ProductFilter narrows and orders a product listing
type ProductFilter struct {
	Category string // exact match, "" or "all" for every category
	Query    string // case-insensitive name substring
	Sort     string // id, name, price, category, created_at, updated_at
	Order    string // ASC or DESC
	Page     int
	PageSize int
}

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// GetByID retrieves a product, ErrProductNotFound if it does not exist
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// List retrieves a filtered page of products and the unpaged total
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)

	// ListAll retrieves every product ordered by id
	ListAll(ctx context.Context) ([]*domain.Product, error)

	// Categories returns the distinct categories in use
	Categories(ctx context.Context) ([]string, error)

	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// whitelist allowed sort columns to avoid SQL injection
var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"price":      "price",
	"category":   "category",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "query product %d", id)
	}
	return &p, nil
}

func (r *GormProductRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})

	category := strings.TrimSpace(filter.Category)
	if category != "" && !strings.EqualFold(category, "all") {
		db = db.Where("category = ?", category)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		if strings.EqualFold(r.db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}

	sortCol, ok := sortColumns[filter.Sort]
	if !ok {
		sortCol = "id"
	}
	order := strings.ToUpper(strings.TrimSpace(filter.Order))
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var rows []*domain.Product
	if err := db.Order(sortCol + " " + order).Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return nil, 0, errors.Wrap(err, "query products")
	}
	return rows, total, nil
}

func (r *GormProductRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	var rows []*domain.Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	return rows, nil
}

func (r *GormProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	return categories, nil
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create product")
}

func (r *GormProductRepository) Update(ctx context.Context, p *domain.Product) error {
	return errors.Wrapf(r.db.WithContext(ctx).Save(p).Error, "update product %d", p.ID)
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{})
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete product %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
