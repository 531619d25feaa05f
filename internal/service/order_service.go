package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/fashiopulse/internal/constants"
	"github.com/fashiopulse/internal/logger"
	"github.com/fashiopulse/internal/models"
	"github.com/fashiopulse/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// expectedDeliveryDays 下单后的预计送达天数
const expectedDeliveryDays = 5

// PlaceOrderInput 单品下单输入
type PlaceOrderInput struct {
	UserID          uint
	ProductID       uint
	Quantity        int
	Size            string
	PaymentMethod   string
	DeliveryAddress string
}

// PlaceBulkOrderInput 整车下单输入
type PlaceBulkOrderInput struct {
	UserID          uint
	PaymentMethod   string
	DeliveryAddress string
}

// BulkOrderResult 整车下单结果
type BulkOrderResult struct {
	BatchNo         string
	Orders          []models.Order
	TotalAmount     models.Money
	ItemCount       int
	PaymentMethod   string
	DeliveryAddress string
}

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// PlaceOrder 单品下单：校验地址与支付方式，扣减库存并创建订单
func (s *OrderService) PlaceOrder(input PlaceOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidUser
	}
	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		return nil, ErrDeliveryAddressRequired
	}
	payment, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}
	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var created *models.Order
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		product, err := loadOrderableProduct(productRepo, input.ProductID)
		if err != nil {
			return err
		}
		if err := reserveStock(productRepo, product.ID, quantity); err != nil {
			return err
		}
		order := buildOrder(input.UserID, product, quantity, input.Size, payment, address, "")
		if err := s.orderRepo.WithTx(tx).Create(&order); err != nil {
			return err
		}
		created = &order
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("order_placed",
		"order_id", created.ID,
		"order_no", created.OrderNo,
		"user_id", created.UserID,
		"product_id", created.ProductID,
		"quantity", created.Quantity,
	)
	return created, nil
}

// PlaceBulkOrder 整车下单：购物车每一行生成一笔订单，共享批次号
// 购物车由调用方在成功后清空
func (s *OrderService) PlaceBulkOrder(input PlaceBulkOrderInput) (*BulkOrderResult, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidUser
	}
	address := strings.TrimSpace(input.DeliveryAddress)
	if address == "" {
		return nil, ErrDeliveryAddressRequired
	}
	payment, err := normalizePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	result := &BulkOrderResult{
		BatchNo:         generateBatchNo(),
		PaymentMethod:   payment,
		DeliveryAddress: address,
	}
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		items, err := s.cartRepo.WithTx(tx).ListByUser(input.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}
		productRepo := s.productRepo.WithTx(tx)
		orders := make([]models.Order, 0, len(items))
		total := models.Money{}
		count := 0
		for _, item := range items {
			product, err := loadOrderableProduct(productRepo, item.ProductID)
			if err != nil {
				return err
			}
			if err := reserveStock(productRepo, product.ID, item.Quantity); err != nil {
				return err
			}
			order := buildOrder(input.UserID, product, item.Quantity, item.Size, payment, address, result.BatchNo)
			total = total.Add(order.TotalAmount)
			count += item.Quantity
			orders = append(orders, order)
		}
		if err := s.orderRepo.WithTx(tx).CreateBatch(orders); err != nil {
			return err
		}
		result.Orders = orders
		result.TotalAmount = total
		result.ItemCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("bulk_order_placed",
		"batch_no", result.BatchNo,
		"user_id", input.UserID,
		"order_count", len(result.Orders),
		"item_count", result.ItemCount,
		"total_amount", result.TotalAmount.String(),
	)
	return result, nil
}

// CancelOrder 取消订单，仅 placed/processing 可取消，并回补库存
func (s *OrderService) CancelOrder(userID, orderID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	var cancelled *models.Order
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByIDAndUser(orderID, userID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		now := time.Now()
		affected, err := orderRepo.TransitionStatus(order.ID, CancellableOrderStatuses(), constants.OrderStatusCancelled, map[string]interface{}{
			"canceled_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotCancellable
		}
		if _, err := s.productRepo.WithTx(tx).RestoreStock(order.ProductID, order.Quantity); err != nil {
			return err
		}
		order.Status = constants.OrderStatusCancelled
		order.CanceledAt = &now
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("order_cancelled", "order_id", cancelled.ID, "user_id", userID)
	return cancelled, nil
}

// ListByUser 用户订单，最新在前
func (s *OrderService) ListByUser(userID uint) ([]models.Order, error) {
	if userID == 0 {
		return nil, ErrInvalidUser
	}
	orders, _, err := s.orderRepo.ListByUser(repository.OrderListFilter{UserID: userID})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CancellableOrderStatuses 可取消的订单状态
func CancellableOrderStatuses() []string {
	return []string{constants.OrderStatusPlaced, constants.OrderStatusProcessing}
}

func loadOrderableProduct(repo repository.ProductRepository, productID uint) (*models.Product, error) {
	product, err := repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	return product, nil
}

func reserveStock(repo repository.ProductRepository, productID uint, quantity int) error {
	affected, err := repo.DecrementStock(productID, quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func buildOrder(userID uint, product *models.Product, quantity int, size, payment, address, batchNo string) models.Order {
	size = strings.ToUpper(strings.TrimSpace(size))
	if size == "" {
		size = strings.TrimSpace(product.Size)
	}
	if size == "" {
		size = constants.DefaultSize
	}
	expected := time.Now().AddDate(0, 0, expectedDeliveryDays)
	return models.Order{
		OrderNo:            generateOrderNo(),
		BatchNo:            batchNo,
		UserID:             userID,
		ProductID:          product.ID,
		ProductName:        product.Name,
		ProductImage:       product.ImageURL,
		Size:               size,
		Quantity:           quantity,
		UnitPrice:          product.Price,
		TotalAmount:        product.Price.Times(quantity),
		PaymentMethod:      payment,
		DeliveryAddress:    address,
		Status:             constants.OrderStatusPlaced,
		ExpectedDeliveryAt: &expected,
	}
}

func normalizePaymentMethod(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return constants.DefaultPaymentMethod, nil
	}
	for _, method := range []string{constants.PaymentMethodCOD, constants.PaymentMethodUPI, constants.PaymentMethodCard} {
		if strings.EqualFold(value, method) {
			return method, nil
		}
	}
	return "", ErrInvalidPaymentMethod
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("FP%s%s", now, randPart)
}

func generateBatchNo() string {
	return "BATCH-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
