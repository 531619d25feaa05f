package service

import (
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"
)

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// ListByUser 获取用户心愿单
func (s *WishlistService) ListByUser(userID uint) ([]models.WishlistItem, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	items, err := s.wishlistRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	result := make([]models.WishlistItem, 0, len(items))
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}

// Toggle 切换心愿单成员，返回切换后是否在心愿单中
func (s *WishlistService) Toggle(userID, productID uint) (bool, error) {
	if userID == 0 {
		return false, ErrInvalidUser
	}
	existing, err := s.wishlistRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		if err := s.wishlistRepo.DeleteByID(existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, ErrProductNotFound
	}
	if err := s.wishlistRepo.Create(&models.WishlistItem{UserID: userID, ProductID: productID}); err != nil {
		return false, err
	}
	return true, nil
}
