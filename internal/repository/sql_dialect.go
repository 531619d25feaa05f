package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

// buildKeywordCondition 构建多列、多关键词的 LIKE 条件。
// 同一关键词命中任意列即可，多个关键词之间为 AND。
func buildKeywordCondition(db *gorm.DB, columns []string, keywords []string) (string, []interface{}) {
	return buildKeywordConditionByDialect(dbDialectName(db), columns, keywords)
}

func buildKeywordConditionByDialect(dialect string, columns []string, keywords []string) (string, []interface{}) {
	operator := likeOperatorByDialect(dialect)
	cols := make([]string, 0, len(columns))
	for _, column := range columns {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			cols = append(cols, trimmed)
		}
	}
	if len(cols) == 0 {
		return "", nil
	}

	groups := make([]string, 0, len(keywords))
	args := make([]interface{}, 0, len(keywords)*len(cols))
	for _, keyword := range keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		parts := make([]string, 0, len(cols))
		for _, column := range cols {
			parts = append(parts, fmt.Sprintf("%s %s ?", column, operator))
		}
		groups = append(groups, "("+strings.Join(parts, " OR ")+")")
		args = append(args, repeatLikeArgs("%"+keyword+"%", len(cols))...)
	}
	return strings.Join(groups, " AND "), args
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []interface{} {
	args := make([]interface{}, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
