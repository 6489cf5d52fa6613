package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// SectionUseCase Section 业务逻辑
type SectionUseCase struct {
	repo   SectionRepo
	logger *logger.Logger
	now    func() time.Time
}

// NewSectionUseCase 创建 Section 业务逻辑
func NewSectionUseCase(repo SectionRepo, logger *logger.Logger) *SectionUseCase {
	return &SectionUseCase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// HasSection returns the section stored under hash, or nil when there is none
func (uc *SectionUseCase) HasSection(ctx context.Context, hash string) (*Section, error) {
	section, err := uc.repo.FindByHash(ctx, hash)
	if errors.Is(err, ErrSectionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find section: %w", err)
	}
	return section, nil
}

// GetSection 根据 hash 获取 Section
func (uc *SectionUseCase) GetSection(ctx context.Context, hash string) (*Section, error) {
	section, err := uc.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return section, nil
}

// CreateSection 创建 Section，hash 为空时根据原文和描述生成
func (uc *SectionUseCase) CreateSection(ctx context.Context, in SectionInput) (*Section, error) {
	if strings.TrimSpace(in.OriginText) == "" {
		return nil, ErrSectionInvalid
	}
	if in.Hash == "" {
		in.Hash = GenerateHash(in.OriginText, in.Desc)
	}

	now := uc.now()
	section := &Section{
		ID:         uuid.New().String(),
		Hash:       in.Hash,
		OriginText: in.OriginText,
		Desc:       in.Desc,
		Status:     in.Status,
		Parent:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.repo.Create(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

// Contract 将 Section 分配给用户
func (uc *SectionUseCase) Contract(ctx context.Context, section *Section, userID string) error {
	now := uc.now()
	section.ContractInfo = &ContractInfo{
		UserID:       userID,
		ContractedAt: now,
	}
	section.UpdatedAt = now

	if err := uc.repo.Save(ctx, section); err != nil {
		return fmt.Errorf("failed to save contract of section %s: %w", section.Hash, err)
	}
	return nil
}

// Commit 提交译文，状态至少提升为已翻译
func (uc *SectionUseCase) Commit(ctx context.Context, hash, userID, text string) (*Commit, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}

	section, err := uc.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	commit := &Commit{
		ID:        uuid.New().String(),
		SectionID: section.ID,
		UserID:    userID,
		Text:      text,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.CreateCommit(ctx, commit); err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}

	if section.Status < StatusTranslated {
		section.Status = StatusTranslated
		section.UpdatedAt = commit.CreatedAt
		if err := uc.repo.Save(ctx, section); err != nil {
			return nil, fmt.Errorf("failed to update section status: %w", err)
		}
	}

	uc.logger.Debug("commit created",
		zap.String("section", hash),
		zap.String("commit_id", commit.ID),
		zap.String("user_id", userID),
	)

	return commit, nil
}

// Publish 指定 Section 的发布版本
func (uc *SectionUseCase) Publish(ctx context.Context, hash, commitID string) (*Section, error) {
	section, err := uc.repo.FindByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.FindCommit(ctx, section.ID, commitID); err != nil {
		return nil, err
	}

	section.PublishedCommit = commitID
	section.UpdatedAt = uc.now()
	if err := uc.repo.Save(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to publish commit: %w", err)
	}

	return section, nil
}
