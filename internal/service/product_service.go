package service

import (
	"strings"
	"unicode"

	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"
)

// ProductSearchInput 商品检索输入
type ProductSearchInput struct {
	Query    string
	Category string
	Color    string
	Gender   string
	Limit    int
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

var searchStopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "for": {}, "me": {}, "show": {}, "find": {}, "some": {},
	"i": {}, "want": {}, "need": {}, "please": {}, "with": {}, "in": {}, "of": {}, "and": {},
	"buy": {}, "looking": {}, "get": {}, "any": {}, "to": {}, "under": {},
}

// Search 检索上架商品；查询为空时按排序返回
func (s *ProductService) Search(input ProductSearchInput) ([]models.Product, error) {
	return s.productRepo.Search(repository.ProductSearchFilter{
		Keywords:   searchKeywords(input.Query),
		Category:   input.Category,
		Color:      input.Color,
		Gender:     input.Gender,
		OnlyActive: true,
		Limit:      input.Limit,
	})
}

// GetByID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func searchKeywords(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
	keywords := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, skip := searchStopwords[field]; skip {
			continue
		}
		keywords = append(keywords, singular(field))
	}
	return keywords
}

// singular 复数形式按单数匹配
func singular(word string) string {
	if len(word) <= 3 || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return word
	}
	for _, suffix := range []string{"sses", "shes", "ches", "xes"} {
		if strings.HasSuffix(word, suffix) {
			return strings.TrimSuffix(word, "es")
		}
	}
	return strings.TrimSuffix(word, "s")
}
