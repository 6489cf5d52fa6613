package biz

import (
	"context"
	"io"
	"time"
)

// Status 翻译进度等级
type Status int

const (
	StatusNew        Status = iota // 未翻译
	StatusTranslated               // 已翻译
	StatusCorrected                // 已校对
	StatusPolished                 // 已润色
)

func (s Status) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusTranslated:
		return "translated"
	case StatusCorrected:
		return "corrected"
	case StatusPolished:
		return "polished"
	default:
		if s > StatusPolished {
			return "polished+"
		}
		return "unknown"
	}
}

// Contractor 用户在某个文件上累计领取的 Section 数量
type Contractor struct {
	UserID string
	Count  int
}

// File 待翻译文件，由有序的 Section hash 列表组成
type File struct {
	ID          string
	Name        string
	AssetsPath  string
	Type        int
	LastUpdated *time.Time

	// Translated/Corrected/Polished 统计加入文件时状态达到对应等级的 Section 数量，
	// 之后 Section 状态变化不会回写
	Translated int
	Corrected  int
	Polished   int

	Sections    []string
	Contractors []Contractor
	CreatedAt   time.Time
}

// HasSection reports whether hash is already listed on the file
func (f *File) HasSection(hash string) bool {
	for _, h := range f.Sections {
		if h == hash {
			return true
		}
	}
	return false
}

// addSection appends the hash and bumps the status counters
func (f *File) addSection(s *Section) {
	f.Sections = append(f.Sections, s.Hash)
	if s.Status >= StatusTranslated {
		f.Translated++
	}
	if s.Status >= StatusCorrected {
		f.Corrected++
	}
	if s.Status >= StatusPolished {
		f.Polished++
	}
}

// addContract sums n into the user's contractor entry, creating it when absent
func (f *File) addContract(userID string, n int) {
	for i := range f.Contractors {
		if f.Contractors[i].UserID == userID {
			f.Contractors[i].Count += n
			return
		}
	}
	f.Contractors = append(f.Contractors, Contractor{UserID: userID, Count: n})
}

// ContractInfo 领取信息
type ContractInfo struct {
	UserID       string
	ContractedAt time.Time
}

// Section 以内容 hash 唯一标识的一段原文及其翻译历史
type Section struct {
	ID              string
	Hash            string
	OriginText      string
	Desc            string
	Status          Status
	PublishedCommit string
	Parent          []string
	ContractInfo    *ContractInfo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// VerifyContractor reports whether userID holds the section's contract
func (s *Section) VerifyContractor(userID string) bool {
	return s.ContractInfo != nil && s.ContractInfo.UserID == userID
}

// IsContracted reports whether any user holds the section's contract
func (s *Section) IsContracted() bool {
	return s.ContractInfo != nil
}

func (s *Section) hasParent(fileID string) bool {
	for _, p := range s.Parent {
		if p == fileID {
			return true
		}
	}
	return false
}

// Commit 一次翻译提交
type Commit struct {
	ID        string
	SectionID string
	UserID    string
	Text      string
	CreatedAt time.Time
}

// CreateFileInput 创建文件参数
type CreateFileInput struct {
	Name       string
	AssetsPath string
	Type       int
}

// SectionInput 合并/创建 Section 参数，Hash 为空时由原文和描述计算
type SectionInput struct {
	OriginText string
	Desc       string
	Hash       string
	Status     Status
}

// FileRepo 文件仓储
type FileRepo interface {
	FindByID(ctx context.Context, id string) (*File, error)
	FindByName(ctx context.Context, name string) (*File, error)
	List(ctx context.Context, page, pageSize int) ([]*File, int64, error)
	Create(ctx context.Context, file *File) error
	Save(ctx context.Context, file *File) error
}

// SectionRepo Section 及其提交记录仓储
type SectionRepo interface {
	FindByHash(ctx context.Context, hash string) (*Section, error)
	Create(ctx context.Context, section *Section) error
	Save(ctx context.Context, section *Section) error
	FindCommit(ctx context.Context, sectionID, commitID string) (*Commit, error)
	CreateCommit(ctx context.Context, commit *Commit) error
}

// AssetStore 源文件对象存储
type AssetStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, assetsPath string) (string, error)
	Exists(ctx context.Context, assetsPath string) (bool, error)
}
