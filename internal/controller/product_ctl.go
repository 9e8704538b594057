package controller

import (
	"io"

	"github.com/gin-gonic/gin"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/api/response"
	"ksap_backend_v1/internal/middleware"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
	"ksap_backend_v1/internal/service"
	"ksap_backend_v1/pkg/utils"
)

// 商品图片上限 10MB
const maxImageSize = 10 << 20

// ==================== ProductController 商品控制器 ====================

// ProductController 商品管理
type ProductController struct {
	productService *service.ProductService
}

// NewProductController 创建商品控制器
func NewProductController(productService *service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

// Create 创建商品
// @Summary 创建商品
// @Tags Product
// @Router /api/v1/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.CreateProductReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	product, err := c.productService.CreateProduct(ctx.Request.Context(), userID, &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.Created(ctx, product.ToMap(true))
}

// List 商品分页列表
// @Summary 商品列表
// @Tags Product
// @Router /api/v1/products [get]
func (c *ProductController) List(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	page, pageSize := pageArgs(ctx)

	filter := repository.ProductFilter{
		StoreID:  ctx.Query("store_id"),
		Status:   ctx.Query("status"),
		SKU:      ctx.Query("sku"),
		Title:    ctx.Query("title"),
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := c.productService.ListProducts(ctx.Request.Context(), userID, filter)
	if err != nil {
		handleErr(ctx, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(products))
	for i := range products {
		items = append(items, products[i].ToMap(false))
	}
	response.List(ctx, items, total, page)
}

// Get 商品详情
// @Summary 商品详情
// @Tags Product
// @Router /api/v1/products/:id [get]
func (c *ProductController) Get(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	product, err := c.productService.GetProduct(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, product.ToMap(true))
}

// Update 更新商品
// @Summary 更新商品
// @Tags Product
// @Router /api/v1/products/:id [put]
func (c *ProductController) Update(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	var req dto.UpdateProductReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.BadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	product, err := c.productService.UpdateProduct(ctx.Request.Context(), userID, ctx.Param("id"), &req)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, product.ToMap(true))
}

// Delete 删除商品
// @Summary 删除商品
// @Tags Product
// @Router /api/v1/products/:id [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	if err := c.productService.DeleteProduct(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, gin.H{"deleted": true})
}

// UploadImage 上传商品图片（multipart 表单字段 image）
// @Summary 上传商品图片
// @Tags Product
// @Router /api/v1/products/:id/images [post]
func (c *ProductController) UploadImage(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		response.BadRequest(ctx, "缺少 image 文件字段")
		return
	}
	if fileHeader.Size > maxImageSize {
		response.BadRequest(ctx, "图片超过大小限制")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(ctx, err.Error())
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImageSize))
	if err != nil {
		response.InternalError(ctx, err.Error())
		return
	}

	// 按文件头嗅探类型，客户端报的 Content-Type 不作数
	contentType := utils.DetectImageType(data)
	if !utils.IsAllowedImageType(contentType) {
		response.BadRequest(ctx, "不支持的图片类型: "+contentType)
		return
	}

	var product *model.Product
	product, err = c.productService.UploadImage(
		ctx.Request.Context(), userID, ctx.Param("id"),
		data, fileHeader.Filename, contentType,
	)
	if err != nil {
		handleErr(ctx, err)
		return
	}
	response.OK(ctx, product.ToMap(true))
}
