// Package inventory manages the pharmacy's product list. Products live
// only in session memory for the lifetime of a pharmacy session; they are
// never written to the record store.
package inventory

import (
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/patrickmn/go-cache"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/pkg/apperror"
	"github.com/caremitra/portal/pkg/idgen"
	"github.com/caremitra/portal/pkg/logger"
)

// PTR computes the price-to-retailer from the maximum retail price and
// the GST rate applied to it. Both inputs are the submitted values, never
// previously entered form state.
func PTR(mrp, gstRate float64) float64 {
	if mrp <= 0 {
		return 0
	}
	return mrp / (1 + gstRate/100)
}

type Service struct {
	products *cache.Cache
	validate *validator.Validate
	log      *logger.Logger
}

func NewService(log *logger.Logger) *Service {
	return &Service{
		products: cache.New(cache.NoExpiration, 0),
		validate: validator.New(),
		log:      log,
	}
}

// Save validates and stores a product. A zero id marks a new product and
// gets a fresh identifier; re-submitting with an existing id replaces
// that product (edit). PTR is derived from the submitted MRP and GST
// rate.
func (s *Service) Save(product model.Product) (model.Product, error) {
	if err := s.validate.Struct(product); err != nil {
		return model.Product{}, apperror.Validation("all required product fields must be filled")
	}

	if product.ID == 0 {
		product.ID = idgen.Next()
	}
	product.PTR = PTR(product.MRP, product.GSTRate)

	s.products.Set(key(product.ID), product, cache.NoExpiration)
	s.log.Debug("product saved", "id", product.ID, "name", product.ProductName)
	return product, nil
}

// Get looks up one product by id.
func (s *Service) Get(id int64) (model.Product, bool) {
	v, ok := s.products.Get(key(id))
	if !ok {
		return model.Product{}, false
	}
	return v.(model.Product), true
}

// Delete removes a product from the inventory. Unknown ids are ignored.
func (s *Service) Delete(id int64) {
	s.products.Delete(key(id))
}

// List returns all products ordered by id, which is creation order.
func (s *Service) List() []model.Product {
	items := s.products.Items()
	products := make([]model.Product, 0, len(items))
	for _, item := range items {
		products = append(products, item.Object.(model.Product))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}
