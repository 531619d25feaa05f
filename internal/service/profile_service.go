package service

import (
	"strings"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"
	"github.com/fashiopulse/internal/shop"
)

// UpdateProfileInput 资料更新输入，nil 字段保持不变
type UpdateProfileInput struct {
	DisplayName   *string
	Gender        *string
	PreferredSize *string
	Preferences   *string
	Addresses     *shop.AddressBook
}

// ProfileService 用户资料服务
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService 创建资料服务
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// GetProfile 获取用户资料
func (s *ProfileService) GetProfile(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !strings.EqualFold(user.Status, constants.UserStatusActive) {
		return nil, ErrUserDisabled
	}
	return user, nil
}

// SaveAddressBook 覆盖保存地址簿
func (s *ProfileService) SaveAddressBook(userID uint, book shop.AddressBook) (*models.User, error) {
	return s.UpdateProfile(userID, UpdateProfileInput{Addresses: &book})
}

// AddAddress 新增或覆盖一个地址标签
func (s *ProfileService) AddAddress(userID uint, label, address string) (*models.User, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, ErrAddressLabelRequired
	}
	if strings.TrimSpace(address) == "" {
		return nil, ErrDeliveryAddressRequired
	}
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	book := user.Addresses.Clone()
	book.Set(label, address)
	return s.UpdateProfile(userID, UpdateProfileInput{Addresses: &book})
}

// UpdateProfile 更新资料字段
func (s *ProfileService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	if _, err := s.GetProfile(userID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if input.DisplayName != nil {
		updates["display_name"] = strings.TrimSpace(*input.DisplayName)
	}
	if input.Gender != nil {
		updates["gender"] = strings.TrimSpace(*input.Gender)
	}
	if input.PreferredSize != nil {
		updates["preferred_size"] = strings.ToUpper(strings.TrimSpace(*input.PreferredSize))
	}
	if input.Preferences != nil {
		updates["preferences"] = strings.TrimSpace(*input.Preferences)
	}
	if err := s.userRepo.UpdateFields(userID, updates); err != nil {
		return nil, err
	}
	if input.Addresses != nil {
		if err := s.userRepo.UpdateAddresses(userID, *input.Addresses); err != nil {
			return nil, err
		}
	}
	return s.GetProfile(userID)
}
