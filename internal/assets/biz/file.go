package biz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

// FileUseCase 文件聚合业务逻辑
type FileUseCase struct {
	files    FileRepo
	sections *SectionUseCase
	assets   AssetStore
	logger   *logger.Logger
	now      func() time.Time
}

// NewFileUseCase 创建文件业务逻辑
func NewFileUseCase(files FileRepo, sections *SectionUseCase, assets AssetStore, logger *logger.Logger) *FileUseCase {
	return &FileUseCase{
		files:    files,
		sections: sections,
		assets:   assets,
		logger:   logger,
		now:      time.Now,
	}
}

// Create upserts a file by name. The path and timestamp are refreshed on an
// existing record. A failed save returns a nil file with ErrFileNotSaved.
func (uc *FileUseCase) Create(ctx context.Context, in CreateFileInput) (*File, error) {
	if in.Name == "" {
		return nil, ErrFileNameRequired
	}

	file, err := uc.files.FindByName(ctx, in.Name)
	isNew := errors.Is(err, ErrFileNotFound)
	if err != nil && !isNew {
		uc.logger.Warn("file lookup failed", zap.String("name", in.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFileNotSaved, err)
	}

	now := uc.now()
	if isNew {
		file = &File{
			ID:          uuid.New().String(),
			Name:        in.Name,
			Type:        in.Type,
			Sections:    []string{},
			Contractors: []Contractor{},
			CreatedAt:   now,
		}
	}
	file.LastUpdated = &now
	file.AssetsPath = in.AssetsPath

	if isNew {
		err = uc.files.Create(ctx, file)
	} else {
		err = uc.files.Save(ctx, file)
	}
	if err != nil {
		uc.logger.Warn("file not saved", zap.String("name", in.Name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrFileNotSaved, err)
	}

	return file, nil
}

// Get 根据 ID 获取文件
func (uc *FileUseCase) Get(ctx context.Context, id string) (*File, error) {
	return uc.files.FindByID(ctx, id)
}

// GetByName 根据文件名获取文件
func (uc *FileUseCase) GetByName(ctx context.Context, name string) (*File, error) {
	return uc.files.FindByName(ctx, name)
}

// List 分页获取文件，最近更新的在前
func (uc *FileUseCase) List(ctx context.Context, page, pageSize int) ([]*File, int64, error) {
	files, total, err := uc.files.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list files: %w", err)
	}
	return files, total, nil
}

// resolve loads the section behind a hash listed on file. A miss means the
// file references a section that does not exist.
func (uc *FileUseCase) resolve(ctx context.Context, file *File, hash string) (*Section, error) {
	section, err := uc.sections.repo.FindByHash(ctx, hash)
	if errors.Is(err, ErrSectionNotFound) {
		uc.logger.Error("file references missing section",
			zap.String("file_id", file.ID),
			zap.String("hash", hash),
		)
		return nil, fmt.Errorf("%w: %s", ErrNoSpecifiedSection, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load section %s: %w", hash, err)
	}
	return section, nil
}

// GetPublishedText returns the published translation of every section in
// order. Sections without a published commit, or whose published commit no
// longer exists, are skipped.
func (uc *FileUseCase) GetPublishedText(ctx context.Context, file *File) ([]string, error) {
	texts := make([]string, 0, len(file.Sections))
	for _, hash := range file.Sections {
		section, err := uc.resolve(ctx, file, hash)
		if err != nil {
			return nil, err
		}
		if section.PublishedCommit == "" {
			continue
		}

		commit, err := uc.sections.repo.FindCommit(ctx, section.ID, section.PublishedCommit)
		if errors.Is(err, ErrCommitNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load commit %s: %w", section.PublishedCommit, err)
		}
		texts = append(texts, commit.Text)
	}
	return texts, nil
}

// MergeSections adds the candidates to file, reusing sections that already
// exist under the same content hash, and returns how many hashes were added.
//
// A failed section creation stops the merge with ErrMergeAborted. Sections
// linked before the failure stay persisted and the file is not saved.
// Concurrent merges on one file are not coordinated.
func (uc *FileUseCase) MergeSections(ctx context.Context, file *File, candidates []SectionInput) (int, error) {
	now := uc.now()
	file.LastUpdated = &now

	count := 0
	for _, in := range candidates {
		if in.Hash == "" {
			in.Hash = GenerateHash(in.OriginText, in.Desc)
		}

		section, err := uc.sections.HasSection(ctx, in.Hash)
		if err != nil {
			return 0, err
		}

		add := false
		if section == nil {
			section, err = uc.sections.CreateSection(ctx, in)
			if err != nil {
				uc.logger.Warn("section creation failed, merge aborted",
					zap.String("file_id", file.ID),
					zap.String("hash", in.Hash),
					zap.Error(err),
				)
				return 0, fmt.Errorf("%w: %w", ErrMergeAborted, err)
			}
			add = true
		} else if !file.HasSection(in.Hash) {
			add = true
		}

		if !add {
			continue
		}

		file.addSection(section)
		count++

		if !section.hasParent(file.ID) {
			section.Parent = append(section.Parent, file.ID)
			section.UpdatedAt = now
			if err := uc.sections.repo.Save(ctx, section); err != nil {
				return 0, fmt.Errorf("failed to link section %s: %w", section.Hash, err)
			}
		}
	}

	if err := uc.files.Save(ctx, file); err != nil {
		return 0, fmt.Errorf("failed to save file: %w", err)
	}

	uc.logger.Info("sections merged",
		zap.String("file_id", file.ID),
		zap.Int("candidates", len(candidates)),
		zap.Int("added", count),
	)

	return count, nil
}

// ContractSections assigns up to count uncontracted sections to userID in
// list order and sums the assigned number into the user's contractor entry.
func (uc *FileUseCase) ContractSections(ctx context.Context, file *File, userID string, count int) (*File, error) {
	if userID == "" {
		return nil, ErrUserRequired
	}
	if count < 0 {
		return nil, ErrInvalidRange
	}

	assigned := 0
	for _, hash := range file.Sections {
		if count <= 0 {
			break
		}

		section, err := uc.resolve(ctx, file, hash)
		if err != nil {
			return nil, err
		}
		if section.IsContracted() {
			continue
		}

		if err := uc.sections.Contract(ctx, section, userID); err != nil {
			return nil, err
		}
		count--
		assigned++
	}

	file.addContract(userID, assigned)
	if err := uc.files.Save(ctx, file); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	uc.logger.Info("sections contracted",
		zap.String("file_id", file.ID),
		zap.String("user_id", userID),
		zap.Int("assigned", assigned),
	)

	return file, nil
}

// GetContractedSections returns the sections of file held by userID, in list
// order. Sections that already carry a translation are still included.
func (uc *FileUseCase) GetContractedSections(ctx context.Context, file *File, userID string) ([]*Section, error) {
	sections := make([]*Section, 0)
	for _, hash := range file.Sections {
		section, err := uc.resolve(ctx, file, hash)
		if err != nil {
			return nil, err
		}
		if section.VerifyContractor(userID) {
			sections = append(sections, section)
		}
	}
	return sections, nil
}

// GetSections resolves the window [start, start+count) of the file's section
// list without modifying it. A count of 0 reads to the end.
func (uc *FileUseCase) GetSections(ctx context.Context, file *File, start, count int) ([]*Section, error) {
	if start < 0 || count < 0 {
		return nil, ErrInvalidRange
	}

	total := len(file.Sections)
	if start >= total {
		return []*Section{}, nil
	}
	end := total
	if count > 0 && count < total-start {
		end = start + count
	}

	sections := make([]*Section, 0, end-start)
	for _, hash := range file.Sections[start:end] {
		section, err := uc.resolve(ctx, file, hash)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// UploadAsset stores the file's source bytes and upserts the file with the
// resulting asset path.
func (uc *FileUseCase) UploadAsset(ctx context.Context, name string, fileType int, r io.Reader, size int64, contentType string) (*File, error) {
	if name == "" {
		return nil, ErrFileNameRequired
	}

	assetsPath, err := uc.assets.Put(ctx, name, r, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetStorage, err)
	}

	return uc.Create(ctx, CreateFileInput{
		Name:       name,
		AssetsPath: assetsPath,
		Type:       fileType,
	})
}

// AssetURL returns a temporary download link for the file's source asset.
// A path whose object is gone yields ErrAssetNotFound.
func (uc *FileUseCase) AssetURL(ctx context.Context, file *File) (string, error) {
	if file.AssetsPath == "" {
		return "", fmt.Errorf("%w: file %s has no asset", ErrAssetStorage, file.Name)
	}

	exists, err := uc.assets.Exists(ctx, file.AssetsPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetStorage, err)
	}
	if !exists {
		uc.logger.Warn("asset object missing",
			zap.String("file_id", file.ID),
			zap.String("assets_path", file.AssetsPath),
		)
		return "", fmt.Errorf("%w: %s", ErrAssetNotFound, file.AssetsPath)
	}

	url, err := uc.assets.PresignedURL(ctx, file.AssetsPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetStorage, err)
	}
	return url, nil
}
