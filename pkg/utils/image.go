package utils

import (
	"net/http"
)

// 图片类型白名单，商品图片只收这几种
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// DetectImageType 按文件头嗅探内容类型，不信客户端报的 Content-Type
func DetectImageType(data []byte) string {
	return http.DetectContentType(data)
}

// IsAllowedImageType 类型是否在白名单里
func IsAllowedImageType(contentType string) bool {
	return allowedImageTypes[contentType]
}
