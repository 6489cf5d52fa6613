package service

import (
	"time"

	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
)

// CreateFileRequest 创建文件请求
type CreateFileRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=512"`
	AssetsPath string `json:"assets_path" binding:"max=1024"`
	Type       int    `json:"type"`
}

// ListFilesRequest 文件列表请求
type ListFilesRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// SectionInput 待合并的 Section
type SectionInput struct {
	OriginText string `json:"origin_text" binding:"required"`
	Desc       string `json:"desc"`
	Hash       string `json:"hash" binding:"omitempty,max=64"`
	Status     int    `json:"status" binding:"min=0"`
}

// MergeSectionsRequest 合并 Section 请求
type MergeSectionsRequest struct {
	Sections []SectionInput `json:"sections" binding:"required,min=1,dive"`
}

// MergeSectionsResponse 合并结果
type MergeSectionsResponse struct {
	Added int `json:"added"`
}

// GetSectionsRequest 分页获取 Section 请求
type GetSectionsRequest struct {
	Start int `form:"start"`
	Count int `form:"count"`
}

// ContractSectionsRequest 领取 Section 请求
type ContractSectionsRequest struct {
	Count int `json:"count" binding:"min=0"`
}

// CommitRequest 提交译文请求
type CommitRequest struct {
	Text string `json:"text" binding:"required"`
}

// PublishRequest 发布译文请求
type PublishRequest struct {
	CommitID string `json:"commit_id" binding:"required,uuid"`
}

// ContractorResponse 领取统计
type ContractorResponse struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
}

// FileResponse 文件响应
type FileResponse struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	AssetsPath  string                `json:"assets_path"`
	Type        int                   `json:"type"`
	LastUpdated *time.Time            `json:"last_updated"`
	Translated  int                   `json:"translated"`
	Corrected   int                   `json:"corrected"`
	Polished    int                   `json:"polished"`
	Sections    []string              `json:"sections"`
	Contractors []*ContractorResponse `json:"contractors"`
}

// ListFilesResponse 文件列表响应
type ListFilesResponse struct {
	Items    []*FileResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ContractInfoResponse 领取信息
type ContractInfoResponse struct {
	UserID       string    `json:"user_id"`
	ContractedAt time.Time `json:"contracted_at"`
}

// SectionResponse Section 响应
type SectionResponse struct {
	ID              string                `json:"id"`
	Hash            string                `json:"hash"`
	OriginText      string                `json:"origin_text"`
	Desc            string                `json:"desc"`
	Status          int                   `json:"status"`
	PublishedCommit string                `json:"published_commit,omitempty"`
	Parent          []string              `json:"parent"`
	ContractInfo    *ContractInfoResponse `json:"contract_info"`
}

// CommitResponse 提交记录响应
type CommitResponse struct {
	ID        string    `json:"id"`
	SectionID string    `json:"section_id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func toFileResponse(f *biz.File) *FileResponse {
	contractors := make([]*ContractorResponse, 0, len(f.Contractors))
	for _, c := range f.Contractors {
		contractors = append(contractors, &ContractorResponse{UserID: c.UserID, Count: c.Count})
	}

	return &FileResponse{
		ID:          f.ID,
		Name:        f.Name,
		AssetsPath:  f.AssetsPath,
		Type:        f.Type,
		LastUpdated: f.LastUpdated,
		Translated:  f.Translated,
		Corrected:   f.Corrected,
		Polished:    f.Polished,
		Sections:    f.Sections,
		Contractors: contractors,
	}
}

func toSectionResponse(s *biz.Section) *SectionResponse {
	resp := &SectionResponse{
		ID:              s.ID,
		Hash:            s.Hash,
		OriginText:      s.OriginText,
		Desc:            s.Desc,
		Status:          int(s.Status),
		PublishedCommit: s.PublishedCommit,
		Parent:          s.Parent,
	}
	if s.ContractInfo != nil {
		resp.ContractInfo = &ContractInfoResponse{
			UserID:       s.ContractInfo.UserID,
			ContractedAt: s.ContractInfo.ContractedAt,
		}
	}
	return resp
}

func toSectionResponses(sections []*biz.Section) []*SectionResponse {
	out := make([]*SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, toSectionResponse(s))
	}
	return out
}

func toCommitResponse(c *biz.Commit) *CommitResponse {
	return &CommitResponse{
		ID:        c.ID,
		SectionID: c.SectionID,
		UserID:    c.UserID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
