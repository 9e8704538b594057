package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/service"
)

// handleErr 业务错误统一出口
// 归属别人的行和不存在的行在仓储层都表现为 ErrRecordNotFound，这里统一 404
func handleErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.NotFound(c, "资源不存在")
	case errors.Is(err, service.ErrStoreNotOwned),
		errors.Is(err, service.ErrProxyNotOwned),
		errors.Is(err, service.ErrSocialAccountNotOwned):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err.Error())
	}
}

// queryInt 查询参数转 int，空和非法都给默认值
func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// pageArgs 取分页参数
func pageArgs(c *gin.Context) (page, pageSize int) {
	return queryInt(c, "page", 1), queryInt(c, "page_size", 20)
}
