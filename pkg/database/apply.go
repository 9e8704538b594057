package database

import (
	"context"
	"log"

	"gorm.io/gorm"
)

// ==================== Schema 应用 ====================
//
// 对照托管 Postgres 逐条执行 DDL。原则：
//   1. 按依赖顺序建表（被引用表在前），逆序删表
//   2. 全部语句幂等，重复执行不报错不重复建表
//   3. 单条失败只记日志不中断，尽力而为，不是事务式迁移

// Execer 最小执行接口，便于测试替换
type Execer interface {
	Exec(sql string, values ...interface{}) *gorm.DB
}

// CreateTables 应用全部表结构
// 返回失败语句数（0 表示全部成功）
func CreateTables(ctx context.Context, db *gorm.DB) int {
	return applyStatements(AllStatements(), db.WithContext(ctx))
}

// AllStatements 按执行顺序展开全部 DDL：
// 建表/策略/索引 -> 共享触发器函数 -> 各表触发器
func AllStatements() []string {
	var stmts []string
	for _, t := range Tables {
		stmts = append(stmts, t.CreateSQL()...)
	}
	stmts = append(stmts, UpdatedAtFunctionSQL())
	for _, t := range Tables {
		stmts = append(stmts, t.TriggerSQL()...)
	}
	return stmts
}

func applyStatements(stmts []string, exec Execer) int {
	failed := 0
	for _, stmt := range stmts {
		if err := exec.Exec(stmt).Error; err != nil {
			failed++
			log.Printf("[Schema] 语句执行失败: %v\nSQL: %.100s...", err, stmt)
		}
	}
	if failed > 0 {
		log.Printf("[Schema] 应用完成，%d/%d 条语句失败", failed, len(stmts))
	} else {
		log.Printf("[Schema] 应用完成，共 %d 条语句", len(stmts))
	}
	return failed
}

// DropTables 逆依赖顺序删除全部表（仅开发/测试环境使用）
func DropTables(ctx context.Context, db *gorm.DB) int {
	failed := 0
	for i := len(Tables) - 1; i >= 0; i-- {
		t := Tables[i]
		if err := db.WithContext(ctx).Exec(t.DropSQL()).Error; err != nil {
			failed++
			log.Printf("[Schema] 删表 %s 失败: %v", t.Name, err)
			continue
		}
		log.Printf("[Schema] 已删除表: %s", t.Name)
	}
	return failed
}
