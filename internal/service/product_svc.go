package service

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"

	"ksap_backend_v1/internal/api/dto"
	"ksap_backend_v1/internal/model"
	"ksap_backend_v1/internal/repository"
)

// ==================== ProductService 商品服务 ====================

// ProductService 商品 CRUD 和图片上传
type ProductService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	storage     *StorageService
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, storeRepo repository.StoreRepository, storage *StorageService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storeRepo:   storeRepo,
		storage:     storage,
	}
}

// CreateProduct 创建商品
// store_id 必须是当前账号名下的店铺，别人的店铺等同不存在
func (s *ProductService) CreateProduct(ctx context.Context, userID string, req *dto.CreateProductReq) (*model.Product, error) {
	if _, err := s.storeRepo.GetByID(ctx, userID, req.StoreID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotOwned
		}
		return nil, err
	}

	product := &model.Product{
		StoreID:           req.StoreID,
		PlatformProductID: req.PlatformProductID,
		Title:             req.Title,
		Description:       req.Description,
		Price:             req.Price,
		CompareAtPrice:    req.CompareAtPrice,
		CostPerItem:       req.CostPerItem,
		SKU:               req.SKU,
		Barcode:           req.Barcode,
		InventoryQuantity: req.InventoryQuantity,
		TrackInventory:    true,
		Weight:            req.Weight,
		Images:            req.Images,
		Tags:              req.Tags,
		Vendor:            req.Vendor,
		ProductType:       req.ProductType,
		Status:            req.Status,
	}
	if req.TrackInventory != nil {
		product.TrackInventory = *req.TrackInventory
	}
	if product.Status == "" {
		product.Status = model.ProductStatusActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 商品详情
func (s *ProductService) GetProduct(ctx context.Context, userID, id string) (*model.Product, error) {
	return s.productRepo.GetByID(ctx, userID, id)
}

// ListProducts 商品分页列表
func (s *ProductService) ListProducts(ctx context.Context, userID string, filter repository.ProductFilter) ([]model.Product, int64, error) {
	return s.productRepo.List(ctx, userID, filter)
}

// UpdateProduct 更新商品
func (s *ProductService) UpdateProduct(ctx context.Context, userID, id string, req *dto.UpdateProductReq) (*model.Product, error) {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.CompareAtPrice != nil {
		fields["compare_at_price"] = *req.CompareAtPrice
	}
	if req.CostPerItem != nil {
		fields["cost_per_item"] = *req.CostPerItem
	}
	if req.SKU != nil {
		fields["sku"] = *req.SKU
	}
	if req.Barcode != nil {
		fields["barcode"] = *req.Barcode
	}
	if req.InventoryQuantity != nil {
		fields["inventory_quantity"] = *req.InventoryQuantity
	}
	if req.TrackInventory != nil {
		fields["track_inventory"] = *req.TrackInventory
	}
	if req.Weight != nil {
		fields["weight"] = *req.Weight
	}
	if len(req.Images) > 0 {
		fields["images"] = req.Images
	}
	if len(req.Tags) > 0 {
		fields["tags"] = req.Tags
	}
	if req.Vendor != nil {
		fields["vendor"] = *req.Vendor
	}
	if req.ProductType != nil {
		fields["product_type"] = *req.ProductType
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.productRepo.UpdateFields(ctx, userID, id, fields); err != nil {
			return nil, err
		}
	}
	return s.productRepo.GetByID(ctx, userID, id)
}

// DeleteProduct 删除商品，历史订单行里的快照保留
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id string) error {
	return s.productRepo.Delete(ctx, userID, id)
}

// UploadImage 上传商品图片并追加到 images 列表
func (s *ProductService) UploadImage(ctx context.Context, userID, id string, data []byte, filename, contentType string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.Upload(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}

	// 追加到现有列表后整列回写
	var images []string
	if len(product.Images) > 0 {
		if err := json.Unmarshal(product.Images, &images); err != nil {
			images = nil
		}
	}
	images = append(images, url)
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateFields(ctx, userID, id, map[string]interface{}{"images": raw}); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, userID, id)
}
