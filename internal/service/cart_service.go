package service

import (
	"strings"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"
)

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
	Size      string
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车；已下架商品自动移除
func (s *CartService) ListByUser(userID uint) ([]models.CartItem, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil || !item.Product.IsActive {
			_ = s.cartRepo.DeleteByID(userID, item.ID)
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// AddItem 加入购物车，同商品同尺码累加数量
func (s *CartService) AddItem(input AddCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidUser
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	size := strings.ToUpper(strings.TrimSpace(input.Size))
	if size == "" {
		size = strings.TrimSpace(product.Size)
	}
	if size == "" {
		size = constants.DefaultSize
	}
	item := &models.CartItem{
		UserID:    input.UserID,
		ProductID: product.ID,
		Size:      size,
		Quantity:  input.Quantity,
	}
	if err := s.cartRepo.Upsert(item); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByID(input.UserID, item.ID)
}

// UpdateQuantity 修改数量；小于 1 时移除该行
func (s *CartService) UpdateQuantity(userID, cartID uint, quantity int) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	if quantity < 1 {
		return s.RemoveItem(userID, cartID)
	}
	affected, err := s.cartRepo.UpdateQuantity(userID, cartID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// RemoveItem 移除购物车行；不存在时视为成功
func (s *CartService) RemoveItem(userID, cartID uint) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	return s.cartRepo.DeleteByID(userID, cartID)
}

// Clear 清空购物车
func (s *CartService) Clear(userID uint) error {
	if userID == 0 {
		return ErrInvalidUser
	}
	return s.cartRepo.ClearByUser(userID)
}
