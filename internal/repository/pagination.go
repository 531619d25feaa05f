package repository

import "gorm.io/gorm"

// maxSearchLimit 单次检索返回的商品上限
const maxSearchLimit = 50

// applyPagination 应用分页参数，统一处理非法页码与偏移量。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	return query.Limit(pageSize).Offset(offset)
}

// clampLimit 将检索上限限制在 (0, maxSearchLimit]
func clampLimit(limit int) int {
	if limit <= 0 || limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}
