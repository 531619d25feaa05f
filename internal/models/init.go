package models

import (
	"github.com/fashiopulse/internal/logger"

	"github.com/shopspring/decimal"
)

// defaultCatalog 空库时写入的演示商品
var defaultCatalog = []Product{
	{Name: "Classic Denim Jacket", Category: "jackets", Color: "blue", Gender: "unisex", Price: NewMoneyFromDecimal(decimal.NewFromInt(2499)), Stock: 40, Size: "M", ImageURL: "/static/products/denim-jacket.jpg", Description: "Washed denim jacket with button front and chest pockets."},
	{Name: "Linen Summer Shirt", Category: "shirts", Color: "white", Gender: "men", Price: NewMoneyFromDecimal(decimal.NewFromInt(1299)), Stock: 60, Size: "L", ImageURL: "/static/products/linen-shirt.jpg", Description: "Breathable linen shirt with a relaxed fit."},
	{Name: "Floral Maxi Dress", Category: "dresses", Color: "red", Gender: "women", Price: NewMoneyFromDecimal(decimal.NewFromInt(1899)), Stock: 25, Size: "S", ImageURL: "/static/products/floral-dress.jpg", Description: "Flowing maxi dress with an all-over floral print."},
	{Name: "Slim Fit Chinos", Category: "trousers", Color: "beige", Gender: "men", Price: NewMoneyFromDecimal(decimal.NewFromInt(1499)), Stock: 50, Size: "M", ImageURL: "/static/products/chinos.jpg", Description: "Stretch cotton chinos with a tapered leg."},
	{Name: "Oversized Hoodie", Category: "hoodies", Color: "black", Gender: "unisex", Price: NewMoneyFromDecimal(decimal.NewFromInt(1799)), Stock: 35, Size: "L", ImageURL: "/static/products/hoodie.jpg", Description: "Heavyweight fleece hoodie with a kangaroo pocket."},
	{Name: "Leather Ankle Boots", Category: "footwear", Color: "brown", Gender: "women", Price: NewMoneyFromDecimal(decimal.NewFromInt(3499)), Stock: 15, Size: "M", ImageURL: "/static/products/ankle-boots.jpg", Description: "Full grain leather boots with a block heel."},
	{Name: "Graphic Cotton Tee", Category: "t-shirts", Color: "white", Gender: "unisex", Price: NewMoneyFromDecimal(decimal.NewFromInt(599)), Stock: 120, Size: "M", ImageURL: "/static/products/graphic-tee.jpg", Description: "Soft cotton tee with a screen printed front graphic."},
	{Name: "Pleated Midi Skirt", Category: "skirts", Color: "green", Gender: "women", Price: NewMoneyFromDecimal(decimal.NewFromInt(1399)), Stock: 30, Size: "S", ImageURL: "/static/products/midi-skirt.jpg", Description: "Satin finish pleated skirt with an elastic waist."},
}

// InitDefaultCatalog 商品表为空时写入演示商品
func InitDefaultCatalog() error {
	var count int64
	if err := DB.Model(&Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	products := make([]Product, len(defaultCatalog))
	copy(products, defaultCatalog)
	for i := range products {
		products[i].IsActive = true
		products[i].SortOrder = len(products) - i
	}
	if err := DB.Create(&products).Error; err != nil {
		return err
	}
	logger.Infow("default_catalog_created", "count", len(products))
	return nil
}
