package service

import (
	"context"
	"testing"
	"time"
)

// 测试替身：记录调用并返回固定 URL
type fakeStorage struct {
	uploaded []string
	deleted  []string
}

func (f *fakeStorage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	f.uploaded = append(f.uploaded, filename)
	return "https://cdn.test/" + filename, nil
}

func (f *fakeStorage) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeStorage) GetSignedURL(ctx context.Context, url string, expires time.Duration) (string, error) {
	return url + "?signed=1", nil
}

// 配置缺失：启动不报错，首次使用才报
func TestStorageService_LazyFailureWhenUnconfigured(t *testing.T) {
	svc, err := NewStorageService(&StorageConfig{})
	if err != nil {
		t.Fatalf("空配置构造不应报错: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Upload(ctx, []byte("x"), "a.jpg", "image/jpeg"); err == nil {
		t.Fatal("未配置存储的上传应报错")
	}
	if err := svc.Delete(ctx, "https://x/a.jpg"); err == nil {
		t.Fatal("未配置存储的删除应报错")
	}
	if _, err := svc.GetSignedURL(ctx, "https://x/a.jpg", time.Minute); err == nil {
		t.Fatal("未配置存储的签名应报错")
	}
}

func TestStorageConfig_Enabled(t *testing.T) {
	full := &StorageConfig{Bucket: "b", Region: "us-east-1", AccessKey: "ak", SecretKey: "sk"}
	if !full.Enabled() {
		t.Fatal("完整配置应视为启用")
	}
	partial := &StorageConfig{Bucket: "b", Region: "us-east-1"}
	if partial.Enabled() {
		t.Fatal("缺凭证的配置不应视为启用")
	}
}

func TestStorageService_DelegatesToProvider(t *testing.T) {
	fake := &fakeStorage{}
	svc := NewStorageServiceWith(fake)
	ctx := context.Background()

	url, err := svc.Upload(ctx, []byte("data"), "photo.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("上传失败: %v", err)
	}
	if url != "https://cdn.test/photo.jpg" {
		t.Fatalf("上传返回 URL 不对: %s", url)
	}
	if len(fake.uploaded) != 1 || fake.uploaded[0] != "photo.jpg" {
		t.Fatal("未委托给 Provider")
	}

	if err := svc.Delete(ctx, url); err != nil || len(fake.deleted) != 1 {
		t.Fatalf("删除未委托: %v", err)
	}
}
