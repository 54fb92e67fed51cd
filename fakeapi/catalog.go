package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jrsteele09/go-storefront-client/models"
)

// Seeded store names.
const (
	StoreCeleste = "Celeste"
	StoreMewave  = "Mewave"
)

// catalogNamespace makes seeded ids stable across runs.
var catalogNamespace = uuid.MustParse("5f0c6d52-3c43-4c39-9d0e-2b8f0f4e7a11")

type catalog struct {
	stores   map[string]string // id -> name
	products []models.Product  // in display order
}

type productSeed struct {
	store, name, description, category, image string
	price                                     float64
	units                                     int
	sizes                                     []string
}

var seedProducts = []productSeed{
	{StoreCeleste, "Cloud Hoodie", "Brushed fleece hoodie", "hoodies", "celeste_images/cloud-hoodie.png", 59.9, 25, []string{"S", "M", "L", "XL"}},
	{StoreCeleste, "Starlight Tee", "Organic cotton tee", "t-shirts", "celeste_images/starlight-tee.png", 24.5, 40, []string{"S", "M", "L"}},
	{StoreCeleste, "Nimbus Cap", "Six panel cap", "accessories", "celeste_images/nimbus-cap.png", 18, 15, []string{"U"}},
	{StoreMewave, "Wave Crewneck", "Heavyweight crewneck", "hoodies", "mewave_images/wave-crewneck.png", 54, 20, []string{"M", "L"}},
	{StoreMewave, "Tide Tee", "Relaxed fit tee", "t-shirts", "mewave_images/tide-tee.png", 22, 50, []string{"XS", "S", "M", "L", "XL"}},
	{StoreMewave, "Current Tote", "Canvas tote bag", "accessories", "mewave_images/current-tote.png", 15.75, 30, []string{"U"}},
}

func seedCatalog() *catalog {
	c := &catalog{stores: make(map[string]string)}
	for _, name := range []string{StoreCeleste, StoreMewave} {
		c.stores[uuid.NewSHA1(catalogNamespace, []byte("store/"+name)).String()] = name
	}

	for _, seed := range seedProducts {
		c.products = append(c.products, models.Product{
			ID:             uuid.NewSHA1(catalogNamespace, []byte("product/"+seed.name)).String(),
			StoreID:        uuid.NewSHA1(catalogNamespace, []byte("store/"+seed.store)).String(),
			StoreName:      seed.store,
			Name:           seed.name,
			Description:    seed.description,
			Category:       seed.category,
			Price:          seed.price,
			AvailableUnits: seed.units,
			ImageURL:       models.RouteProductImagePrefix + seed.image,
			Sizes:          seed.sizes,
		})
	}
	return c
}

func (c *catalog) product(id string) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// StoreID returns the seeded id of a store by name.
func (s *Server) StoreID(name string) string {
	for id, n := range s.catalog.stores {
		if strings.EqualFold(n, name) {
			return id
		}
	}
	return ""
}

// Products returns the seeded catalogue.
func (s *Server) Products() []models.Product {
	return append([]models.Product(nil), s.catalog.products...)
}

type productFilter struct {
	storeName, storeID, category string
	minPrice, maxPrice           float64
}

func (f productFilter) match(p models.Product) bool {
	switch {
	case f.storeName != "" && !strings.EqualFold(p.StoreName, f.storeName):
		return false
	case f.storeID != "" && p.StoreID != f.storeID:
		return false
	case f.category != "" && !strings.EqualFold(p.Category, f.category):
		return false
	case p.Price < f.minPrice:
		return false
	case f.maxPrice > 0 && p.Price > f.maxPrice:
		return false
	}
	return true
}

func (c *catalog) page(filter productFilter, page, limit int) models.ProductPage {
	var matched []models.Product
	for _, p := range c.products {
		if filter.match(p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	out := models.ProductPage{Total: int64(len(matched)), Page: page, Limit: limit, Products: []models.Product{}}
	start := (page - 1) * limit
	if start < len(matched) {
		out.Products = matched[start:min(start+limit, len(matched))]
	}
	return out
}

// paging reads page and limit, falling back to 1 and defaultLimit on bad input.
func paging(r *http.Request, defaultLimit int) (page, limit int) {
	page, limit = 1, defaultLimit
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= models.MaxPageLimit {
		limit = l
	}
	return page, limit
}

func queryFloat(r *http.Request, key string) float64 {
	v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
	if err != nil {
		return 0
	}
	return v
}

func (s *Server) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r, models.DefaultProductLimit)
	filter := productFilter{
		storeName: r.URL.Query().Get("store"),
		category:  r.URL.Query().Get("category"),
		minPrice:  queryFloat(r, "min_price"),
		maxPrice:  queryFloat(r, "max_price"),
	}
	writeJSON(w, http.StatusOK, s.catalog.page(filter, page, limit))
}

func (s *Server) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, paramID)
	if _, err := uuid.Parse(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, ok := s.catalog.product(id)
	if !ok {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) productsByStoreHandler(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, paramStoreID)
	if _, err := uuid.Parse(storeID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid store id")
		return
	}
	page, limit := paging(r, models.DefaultProductLimit)
	writeJSON(w, http.StatusOK, s.catalog.page(productFilter{storeID: storeID}, page, limit))
}

func (s *Server) productsByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := paging(r, models.DefaultProductLimit)
	writeJSON(w, http.StatusOK, s.catalog.page(productFilter{category: chi.URLParam(r, paramCategory)}, page, limit))
}
