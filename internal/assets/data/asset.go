package data

import (
	"context"
	"io"

	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/minio"
)

// AssetStore 基于 MinIO 的源文件存储
type AssetStore struct {
	client *minio.Client
}

// NewAssetStore 创建源文件存储
func NewAssetStore(client *minio.Client) biz.AssetStore {
	return &AssetStore{client: client}
}

// Put uploads r under files/<name> and returns the object key
func (s *AssetStore) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	key := minio.AssetKey(name)
	if contentType == "" {
		contentType = minio.DetectContentType(name)
	}

	_, err := s.client.PutObject(ctx, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// PresignedURL 生成临时下载链接
func (s *AssetStore) PresignedURL(ctx context.Context, assetsPath string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, assetsPath, 0, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Exists 检查对象是否仍在存储桶中
func (s *AssetStore) Exists(ctx context.Context, assetsPath string) (bool, error) {
	_, err := s.client.StatObject(ctx, assetsPath)
	if err == nil {
		return true, nil
	}
	if minio.IsNotFound(err) {
		return false, nil
	}
	return false, err
}
