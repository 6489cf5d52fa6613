package data

import (
	"context"

	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/models"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/database"
)

// SectionRepo Section 仓储实现
type SectionRepo struct {
	db *database.DB
}

// NewSectionRepo 创建 Section 仓储
func NewSectionRepo(db *database.DB) biz.SectionRepo {
	return &SectionRepo{db: db}
}

// FindByHash 根据内容 hash 获取 Section
func (r *SectionRepo) FindByHash(ctx context.Context, hash string) (*biz.Section, error) {
	var po models.Section
	err := r.db.WithContext(ctx).GetDB().Where("hash = ?", hash).First(&po).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrSectionNotFound
		}
		return nil, err
	}
	return toSection(&po), nil
}

// Create 创建 Section，hash 冲突返回 biz.ErrSectionExists
func (r *SectionRepo) Create(ctx context.Context, section *biz.Section) error {
	err := r.db.WithContext(ctx).GetDB().Create(toSectionPO(section)).Error
	if database.IsDuplicateKeyError(err) {
		return biz.ErrSectionExists
	}
	return err
}

// Save 保存 Section 全部字段
func (r *SectionRepo) Save(ctx context.Context, section *biz.Section) error {
	return r.db.WithContext(ctx).GetDB().Save(toSectionPO(section)).Error
}

// FindCommit 在 Section 的提交记录中查找指定提交
func (r *SectionRepo) FindCommit(ctx context.Context, sectionID, commitID string) (*biz.Commit, error) {
	var po models.Commit
	err := r.db.WithContext(ctx).GetDB().
		Where("id = ? AND section_id = ?", commitID, sectionID).
		First(&po).Error
	if err != nil {
		if database.IsRecordNotFoundError(err) {
			return nil, biz.ErrCommitNotFound
		}
		return nil, err
	}

	return &biz.Commit{
		ID:        po.ID,
		SectionID: po.SectionID,
		UserID:    po.UserID,
		Text:      po.Text,
		CreatedAt: po.CreatedAt,
	}, nil
}

// CreateCommit 创建提交记录
func (r *SectionRepo) CreateCommit(ctx context.Context, commit *biz.Commit) error {
	po := &models.Commit{
		ID:        commit.ID,
		SectionID: commit.SectionID,
		UserID:    commit.UserID,
		Text:      commit.Text,
		CreatedAt: commit.CreatedAt,
	}
	return r.db.WithContext(ctx).GetDB().Create(po).Error
}

func toSectionPO(s *biz.Section) *models.Section {
	po := &models.Section{
		ID:              s.ID,
		Hash:            s.Hash,
		OriginText:      s.OriginText,
		Description:     s.Desc,
		Status:          int(s.Status),
		PublishedCommit: s.PublishedCommit,
		Parent:          models.StringArray(s.Parent),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.ContractInfo != nil {
		user := s.ContractInfo.UserID
		at := s.ContractInfo.ContractedAt
		po.ContractUser = &user
		po.ContractedAt = &at
	}
	return po
}

func toSection(po *models.Section) *biz.Section {
	parent := []string(po.Parent)
	if parent == nil {
		parent = []string{}
	}

	s := &biz.Section{
		ID:              po.ID,
		Hash:            po.Hash,
		OriginText:      po.OriginText,
		Desc:            po.Description,
		Status:          biz.Status(po.Status),
		PublishedCommit: po.PublishedCommit,
		Parent:          parent,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
	}
	if po.ContractUser != nil {
		info := &biz.ContractInfo{UserID: *po.ContractUser}
		if po.ContractedAt != nil {
			info.ContractedAt = *po.ContractedAt
		}
		s.ContractInfo = info
	}
	return s
}
