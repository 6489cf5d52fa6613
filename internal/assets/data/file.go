package data

import (
	"context"

	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/models"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/database"
)

// FileRepo 文件仓储实现
type FileRepo struct {
	db *database.DB
}

// NewFileRepo 创建文件仓储
func NewFileRepo(db *database.DB) biz.FileRepo {
	return &FileRepo{db: db}
}

// FindByID 根据ID获取文件
func (r *FileRepo) FindByID(ctx context.Context, id string) (*biz.File, error) {
	var po models.File
	err := r.db.WithContext(ctx).GetDB().Where("id = ?", id).First(&po).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrFileNotFound
		}
		return nil, err
	}
	return toFile(&po), nil
}

// FindByName 根据文件名获取文件
func (r *FileRepo) FindByName(ctx context.Context, name string) (*biz.File, error) {
	var po models.File
	err := r.db.WithContext(ctx).GetDB().Where("name = ?", name).First(&po).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrFileNotFound
		}
		return nil, err
	}
	return toFile(&po), nil
}

// List 分页获取文件列表，按最近更新时间倒序
func (r *FileRepo) List(ctx context.Context, page, pageSize int) ([]*biz.File, int64, error) {
	var pos []models.File
	var total int64

	query := r.db.WithContext(ctx).GetDB().Model(&models.File{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Scopes(database.OrderBy("last_updated", true), database.Paginate(page, pageSize)).
		Order("name").
		Find(&pos).Error
	if err != nil {
		return nil, 0, err
	}

	files := make([]*biz.File, 0, len(pos))
	for i := range pos {
		files = append(files, toFile(&pos[i]))
	}
	return files, total, nil
}

// Create 创建文件
func (r *FileRepo) Create(ctx context.Context, file *biz.File) error {
	return r.db.WithContext(ctx).GetDB().Create(toFilePO(file)).Error
}

// Save 保存文件全部字段
func (r *FileRepo) Save(ctx context.Context, file *biz.File) error {
	return r.db.WithContext(ctx).GetDB().Save(toFilePO(file)).Error
}

func toFilePO(f *biz.File) *models.File {
	contractors := make(models.Contractors, 0, len(f.Contractors))
	for _, c := range f.Contractors {
		contractors = append(contractors, models.Contractor{User: c.UserID, Count: c.Count})
	}

	return &models.File{
		ID:          f.ID,
		Name:        f.Name,
		AssetsPath:  f.AssetsPath,
		Type:        f.Type,
		LastUpdated: f.LastUpdated,
		Translated:  f.Translated,
		Corrected:   f.Corrected,
		Polished:    f.Polished,
		Sections:    models.StringArray(f.Sections),
		Contractors: contractors,
		CreatedAt:   f.CreatedAt,
	}
}

func toFile(po *models.File) *biz.File {
	contractors := make([]biz.Contractor, 0, len(po.Contractors))
	for _, c := range po.Contractors {
		contractors = append(contractors, biz.Contractor{UserID: c.User, Count: c.Count})
	}

	sections := []string(po.Sections)
	if sections == nil {
		sections = []string{}
	}

	return &biz.File{
		ID:          po.ID,
		Name:        po.Name,
		AssetsPath:  po.AssetsPath,
		Type:        po.Type,
		LastUpdated: po.LastUpdated,
		Translated:  po.Translated,
		Corrected:   po.Corrected,
		Polished:    po.Polished,
		Sections:    sections,
		Contractors: contractors,
		CreatedAt:   po.CreatedAt,
	}
}
