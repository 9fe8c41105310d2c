// internal/services/filter_service.go
package services

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/collate"

	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/utils"
)

// Query parameter names of the shop listing.
const (
	ParamCategory   = "category"
	ParamFlowerType = "flowerType"
	ParamPriceRange = "priceRange"
	ParamColors     = "colors"
	ParamTags       = "tags"
	ParamFeatured   = "featured"
	ParamInStock    = "inStock"
	ParamSearch     = "search"
	ParamSort       = "sort"
)

// DefaultSort is used when no sort key is given.
const DefaultSort = models.SortFeatured

// FilterProducts returns the products matching every active dimension of
// filters, keeping catalog order. Values inside one dimension are OR-ed.
func FilterProducts(products []models.Product, filters models.FilterState) []models.Product {
	keyword := strings.ToLower(strings.TrimSpace(filters.SearchKeyword))

	result := make([]models.Product, 0, len(products))
	for _, product := range products {
		if len(filters.Categories) > 0 && !containsCategory(filters.Categories, product.Category) {
			continue
		}
		if len(filters.FlowerTypes) > 0 && !containsFlowerType(filters.FlowerTypes, product.FlowerType) {
			continue
		}
		if filters.PriceRange != nil && !filters.PriceRange.Contains(product.Price) {
			continue
		}
		if len(filters.Colors) > 0 && !intersects(filters.Colors, product.Colors) {
			continue
		}
		if len(filters.Tags) > 0 && !intersects(filters.Tags, product.Tags) {
			continue
		}
		if filters.FeaturedOnly && !product.Featured {
			continue
		}
		if filters.InStockOnly && !product.InStock() {
			continue
		}
		if keyword != "" && !matchesKeyword(product, keyword) {
			continue
		}
		result = append(result, product)
	}
	return result
}

// SortProducts returns a sorted copy of products. Equal primary keys are
// ordered by rating descending, then id ascending. Unknown keys sort like
// SortFeatured.
func SortProducts(products []models.Product, sortBy models.SortKey) []models.Product {
	sorted := make([]models.Product, len(products))
	copy(sorted, products)

	var primary func(a, b models.Product) int
	switch sortBy {
	case models.SortPriceAsc:
		primary = func(a, b models.Product) int { return compareInt64(a.Price, b.Price) }
	case models.SortPriceDesc:
		primary = func(a, b models.Product) int { return compareInt64(b.Price, a.Price) }
	case models.SortRating:
		primary = func(a, b models.Product) int { return 0 }
	case models.SortNameAsc, models.SortNameDesc:
		collator := collate.New(utils.DisplayLocale, collate.IgnoreCase)
		desc := sortBy == models.SortNameDesc
		primary = func(a, b models.Product) int {
			if desc {
				return collator.CompareString(b.Name, a.Name)
			}
			return collator.CompareString(a.Name, b.Name)
		}
	default:
		primary = func(a, b models.Product) int {
			switch {
			case a.Featured == b.Featured:
				return 0
			case a.Featured:
				return -1
			default:
				return 1
			}
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if c := primary(a, b); c != 0 {
			return c < 0
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		return a.ID < b.ID
	})
	return sorted
}

// ActiveFilterCount counts every selected value of the multi-valued
// dimensions plus one per active single-valued dimension. InStockOnly only
// counts when it has been switched off.
func ActiveFilterCount(filters models.FilterState) int {
	count := len(filters.Categories) + len(filters.FlowerTypes) + len(filters.Colors) + len(filters.Tags)
	if filters.PriceRange != nil {
		count++
	}
	if filters.FeaturedOnly {
		count++
	}
	if strings.TrimSpace(filters.SearchKeyword) != "" {
		count++
	}
	if !filters.InStockOnly {
		count++
	}
	return count
}

// ParseFilterQuery merges the recognized parameters of values into base.
// Parameters absent from values leave the matching field of base untouched.
func ParseFilterQuery(values url.Values, base models.FilterState, baseSort models.SortKey) (models.FilterState, models.SortKey) {
	filters := cloneFilterState(base)
	sortBy := baseSort

	if _, ok := values[ParamCategory]; ok {
		filters.Categories = []models.Category{}
		for _, v := range splitList(values.Get(ParamCategory)) {
			if c := models.Category(v); c.Valid() && !containsCategory(filters.Categories, c) {
				filters.Categories = append(filters.Categories, c)
			}
		}
	}
	if _, ok := values[ParamFlowerType]; ok {
		filters.FlowerTypes = []models.FlowerType{}
		for _, v := range splitList(values.Get(ParamFlowerType)) {
			if f := models.FlowerType(v); f.Valid() && !containsFlowerType(filters.FlowerTypes, f) {
				filters.FlowerTypes = append(filters.FlowerTypes, f)
			}
		}
	}
	if _, ok := values[ParamPriceRange]; ok {
		raw := values.Get(ParamPriceRange)
		if raw == "" {
			filters.PriceRange = nil
		} else if r, ok := parsePriceRange(raw); ok {
			filters.PriceRange = &r
		}
	}
	if _, ok := values[ParamColors]; ok {
		filters.Colors = uniqueStrings(splitList(values.Get(ParamColors)))
	}
	if _, ok := values[ParamTags]; ok {
		filters.Tags = uniqueStrings(splitList(values.Get(ParamTags)))
	}
	if _, ok := values[ParamFeatured]; ok {
		filters.FeaturedOnly = values.Get(ParamFeatured) == "true"
	}
	if _, ok := values[ParamInStock]; ok {
		filters.InStockOnly = values.Get(ParamInStock) != "false"
	}
	if _, ok := values[ParamSearch]; ok {
		filters.SearchKeyword = values.Get(ParamSearch)
	}
	if _, ok := values[ParamSort]; ok {
		if s := models.SortKey(values.Get(ParamSort)); s.Valid() {
			sortBy = s
		}
	}

	return filters, sortBy
}

// EncodeFilterQuery serializes the complete filter state. Fields at their
// default value are left out, so parsing the result over the defaults
// reproduces filters exactly.
func EncodeFilterQuery(filters models.FilterState, sortBy models.SortKey) string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+value)
	}

	if len(filters.Categories) > 0 {
		values := make([]string, len(filters.Categories))
		for i, c := range filters.Categories {
			values[i] = string(c)
		}
		add(ParamCategory, joinList(values))
	}
	if len(filters.FlowerTypes) > 0 {
		values := make([]string, len(filters.FlowerTypes))
		for i, f := range filters.FlowerTypes {
			values[i] = string(f)
		}
		add(ParamFlowerType, joinList(values))
	}
	if filters.PriceRange != nil {
		add(ParamPriceRange, strconv.FormatInt(filters.PriceRange.Min, 10)+"-"+strconv.FormatInt(filters.PriceRange.Max, 10))
	}
	if len(filters.Colors) > 0 {
		add(ParamColors, joinList(filters.Colors))
	}
	if len(filters.Tags) > 0 {
		add(ParamTags, joinList(filters.Tags))
	}
	if filters.FeaturedOnly {
		add(ParamFeatured, "true")
	}
	if !filters.InStockOnly {
		add(ParamInStock, "false")
	}
	if filters.SearchKeyword != "" {
		add(ParamSearch, url.QueryEscape(filters.SearchKeyword))
	}
	if sortBy != "" && sortBy != DefaultSort {
		add(ParamSort, url.QueryEscape(string(sortBy)))
	}

	return strings.Join(parts, "&")
}

// FilterController keeps the shop's filter state in step with the listing
// URL. External URL changes are merged with SyncFromQuery; every update
// serializes the whole state and hands the query string to the navigator.
type FilterController struct {
	mu       sync.Mutex
	filters  models.FilterState
	sortBy   models.SortKey
	navigate func(query string)
}

// NewFilterController starts from the default state. navigate may be nil.
func NewFilterController(navigate func(query string)) *FilterController {
	return &FilterController{
		filters:  models.DefaultFilterState(),
		sortBy:   DefaultSort,
		navigate: navigate,
	}
}

// SyncFromQuery merges an externally changed query string into the state
// without pushing a navigation.
func (fc *FilterController) SyncFromQuery(rawQuery string) error {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return err
	}

	fc.mu.Lock()
	fc.filters, fc.sortBy = ParseFilterQuery(values, fc.filters, fc.sortBy)
	fc.mu.Unlock()
	return nil
}

func (fc *FilterController) State() (models.FilterState, models.SortKey) {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return cloneFilterState(fc.filters), fc.sortBy
}

// Query is the canonical query string of the current state.
func (fc *FilterController) Query() string {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return EncodeFilterQuery(fc.filters, fc.sortBy)
}

func (fc *FilterController) ActiveFilterCount() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return ActiveFilterCount(fc.filters)
}

// FilterChange is one edit of the filter state. Apply combines several
// edits into a single navigation.
type FilterChange func(f *models.FilterState, s *models.SortKey)

func SelectCategories(categories []models.Category) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.Categories = []models.Category{}
		for _, c := range categories {
			if c.Valid() && !containsCategory(f.Categories, c) {
				f.Categories = append(f.Categories, c)
			}
		}
	}
}

func FlipCategory(category models.Category) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		if !category.Valid() {
			return
		}
		for i, c := range f.Categories {
			if c == category {
				f.Categories = append(f.Categories[:i:i], f.Categories[i+1:]...)
				return
			}
		}
		f.Categories = append(f.Categories, category)
	}
}

func SelectFlowerTypes(flowerTypes []models.FlowerType) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.FlowerTypes = []models.FlowerType{}
		for _, t := range flowerTypes {
			if t.Valid() && !containsFlowerType(f.FlowerTypes, t) {
				f.FlowerTypes = append(f.FlowerTypes, t)
			}
		}
	}
}

func PriceWithin(r models.PriceRange) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.PriceRange = &r
	}
}

func AnyPrice() FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.PriceRange = nil
	}
}

func SelectColors(colors []string) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.Colors = uniqueStrings(colors)
	}
}

func FlipColor(color string) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.Colors = toggleString(f.Colors, color)
	}
}

func SelectTags(tags []string) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.Tags = uniqueStrings(tags)
	}
}

func FlipTag(tag string) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.Tags = toggleString(f.Tags, tag)
	}
}

func OnlyFeatured(featured bool) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.FeaturedOnly = featured
	}
}

func OnlyInStock(inStock bool) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.InStockOnly = inStock
	}
}

func SearchFor(keyword string) FilterChange {
	return func(f *models.FilterState, _ *models.SortKey) {
		f.SearchKeyword = keyword
	}
}

// SortBy ignores unknown keys.
func SortBy(sortBy models.SortKey) FilterChange {
	return func(_ *models.FilterState, s *models.SortKey) {
		if sortBy.Valid() {
			*s = sortBy
		}
	}
}

// Apply runs changes in order and pushes the resulting query once.
func (fc *FilterController) Apply(changes ...FilterChange) string {
	fc.mu.Lock()
	for _, change := range changes {
		change(&fc.filters, &fc.sortBy)
	}
	query := EncodeFilterQuery(fc.filters, fc.sortBy)
	navigate := fc.navigate
	fc.mu.Unlock()

	if navigate != nil {
		navigate(query)
	}
	return query
}

func (fc *FilterController) SetCategories(categories []models.Category) string {
	return fc.Apply(SelectCategories(categories))
}

func (fc *FilterController) ToggleCategory(category models.Category) string {
	return fc.Apply(FlipCategory(category))
}

func (fc *FilterController) SetFlowerTypes(flowerTypes []models.FlowerType) string {
	return fc.Apply(SelectFlowerTypes(flowerTypes))
}

func (fc *FilterController) SetPriceRange(r models.PriceRange) string {
	return fc.Apply(PriceWithin(r))
}

func (fc *FilterController) ClearPriceRange() string {
	return fc.Apply(AnyPrice())
}

func (fc *FilterController) SetColors(colors []string) string {
	return fc.Apply(SelectColors(colors))
}

func (fc *FilterController) ToggleColor(color string) string {
	return fc.Apply(FlipColor(color))
}

func (fc *FilterController) SetTags(tags []string) string {
	return fc.Apply(SelectTags(tags))
}

func (fc *FilterController) ToggleTag(tag string) string {
	return fc.Apply(FlipTag(tag))
}

func (fc *FilterController) SetFeaturedOnly(featured bool) string {
	return fc.Apply(OnlyFeatured(featured))
}

func (fc *FilterController) SetInStockOnly(inStock bool) string {
	return fc.Apply(OnlyInStock(inStock))
}

func (fc *FilterController) SetSearch(keyword string) string {
	return fc.Apply(SearchFor(keyword))
}

func (fc *FilterController) SetSort(sortBy models.SortKey) string {
	return fc.Apply(SortBy(sortBy))
}

// ResetFilters restores every default; the pushed query string is empty.
func (fc *FilterController) ResetFilters() string {
	return fc.Apply(func(f *models.FilterState, s *models.SortKey) {
		*f = models.DefaultFilterState()
		*s = DefaultSort
	})
}

func matchesKeyword(product models.Product, keyword string) bool {
	if strings.Contains(strings.ToLower(product.Name), keyword) ||
		strings.Contains(strings.ToLower(product.Description), keyword) {
		return true
	}
	for _, tag := range product.Tags {
		if strings.Contains(strings.ToLower(tag), keyword) {
			return true
		}
	}
	for _, color := range product.Colors {
		if strings.Contains(strings.ToLower(color), keyword) {
			return true
		}
	}
	return false
}

func parsePriceRange(raw string) (models.PriceRange, bool) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return models.PriceRange{}, false
	}
	lo, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return models.PriceRange{}, false
	}
	hi, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || lo < 0 || hi < lo {
		return models.PriceRange{}, false
	}
	return models.PriceRange{Min: lo, Max: hi}, true
}

const listSeparator = ","

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, listSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinList(values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = url.QueryEscape(v)
	}
	return strings.Join(escaped, listSeparator)
}

// uniqueStrings trims and dedupes list values. Values containing the list
// separator are dropped since they cannot survive the query string.
func uniqueStrings(values []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] || strings.Contains(v, listSeparator) {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func toggleString(values []string, value string) []string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, listSeparator) {
		return values
	}
	out := make([]string, 0, len(values)+1)
	found := false
	for _, v := range values {
		if v == value {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, value)
	}
	return out
}

func intersects(selected, values []string) bool {
	for _, s := range selected {
		for _, v := range values {
			if strings.EqualFold(s, v) {
				return true
			}
		}
	}
	return false
}

func containsCategory(list []models.Category, c models.Category) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

func containsFlowerType(list []models.FlowerType, f models.FlowerType) bool {
	for _, v := range list {
		if v == f {
			return true
		}
	}
	return false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cloneFilterState(f models.FilterState) models.FilterState {
	out := f
	out.Categories = append([]models.Category{}, f.Categories...)
	out.FlowerTypes = append([]models.FlowerType{}, f.FlowerTypes...)
	out.Colors = append([]string{}, f.Colors...)
	out.Tags = append([]string{}, f.Tags...)
	if f.PriceRange != nil {
		r := *f.PriceRange
		out.PriceRange = &r
	}
	return out
}
