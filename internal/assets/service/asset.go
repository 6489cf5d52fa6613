package service

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lk2023060901/ai-translate-backend/internal/assets/biz"
	"github.com/lk2023060901/ai-translate-backend/internal/auth/middleware"
	apperrors "github.com/lk2023060901/ai-translate-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// AssetService 文件与 Section HTTP 服务
type AssetService struct {
	files    *biz.FileUseCase
	sections *biz.SectionUseCase
	logger   *logger.Logger
}

// NewAssetService 创建文件与 Section 服务
func NewAssetService(files *biz.FileUseCase, sections *biz.SectionUseCase, logger *logger.Logger) *AssetService {
	return &AssetService{
		files:    files,
		sections: sections,
		logger:   logger,
	}
}

// RegisterRoutes 注册路由。auth 校验访问令牌，contractLimit 限制领取频率
func (s *AssetService) RegisterRoutes(api *gin.RouterGroup, auth, contractLimit gin.HandlerFunc) {
	files := api.Group("/files")
	{
		files.POST("", s.CreateFile)
		files.POST("/upload", s.UploadFile)
		files.GET("", s.ListFiles)
		files.GET("/:id", s.GetFile)
		files.GET("/:id/asset", s.GetAssetURL)
		files.GET("/:id/text", s.GetPublishedText)
		files.POST("/:id/sections", s.MergeSections)
		files.GET("/:id/sections", s.GetSections)
		files.POST("/:id/contracts", auth, contractLimit, s.ContractSections)
		files.GET("/:id/contracts/mine", auth, s.GetMyContracts)
	}

	sections := api.Group("/sections")
	{
		sections.POST("/:hash/commits", auth, s.CommitSection)
		sections.POST("/:hash/publish", s.PublishSection)
	}
}

// CreateFile 创建或更新文件
func (s *AssetService) CreateFile(c *gin.Context) {
	var req CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, err := s.files.Create(c.Request.Context(), biz.CreateFileInput{
		Name:       req.Name,
		AssetsPath: req.AssetsPath,
		Type:       req.Type,
	})
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, toFileResponse(file))
}

// UploadFile 上传源文件并创建文件记录
func (s *AssetService) UploadFile(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}

	name := c.PostForm("name")
	if name == "" {
		name = header.Filename
	}

	fileType := 0
	if v := c.PostForm("type"); v != "" {
		if fileType, err = strconv.Atoi(v); err != nil {
			response.BadRequest(c, "type must be an integer")
			return
		}
	}

	src, err := header.Open()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer src.Close()

	file, err := s.files.UploadAsset(c.Request.Context(), name, fileType, src, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, toFileResponse(file))
}

// ListFiles 文件列表
func (s *AssetService) ListFiles(c *gin.Context) {
	var req ListFilesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	files, total, err := s.files.List(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		s.handleError(c, err)
		return
	}

	items := make([]*FileResponse, 0, len(files))
	for _, f := range files {
		items = append(items, toFileResponse(f))
	}

	response.Success(c, &ListFilesResponse{
		Items:    items,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
}

// GetFile 文件详情
func (s *AssetService) GetFile(c *gin.Context) {
	file, ok := s.loadFile(c)
	if !ok {
		return
	}
	response.Success(c, toFileResponse(file))
}

// GetAssetURL 源文件临时下载链接
func (s *AssetService) GetAssetURL(c *gin.Context) {
	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	url, err := s.files.AssetURL(c.Request.Context(), file)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, gin.H{"url": url})
}

// GetPublishedText 已发布译文
func (s *AssetService) GetPublishedText(c *gin.Context) {
	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	texts, err := s.files.GetPublishedText(c.Request.Context(), file)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, gin.H{"texts": texts})
}

// MergeSections 合并 Section 到文件
func (s *AssetService) MergeSections(c *gin.Context) {
	var req MergeSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	candidates := make([]biz.SectionInput, 0, len(req.Sections))
	for _, in := range req.Sections {
		candidates = append(candidates, biz.SectionInput{
			OriginText: in.OriginText,
			Desc:       in.Desc,
			Hash:       in.Hash,
			Status:     biz.Status(in.Status),
		})
	}

	added, err := s.files.MergeSections(c.Request.Context(), file, candidates)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, &MergeSectionsResponse{Added: added})
}

// GetSections 分页获取 Section
func (s *AssetService) GetSections(c *gin.Context) {
	var req GetSectionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	sections, err := s.files.GetSections(c.Request.Context(), file, req.Start, req.Count)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Paged(c, toSectionResponses(sections), req.Start, len(file.Sections))
}

// ContractSections 领取 Section
func (s *AssetService) ContractSections(c *gin.Context) {
	var req ContractSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	file, err := s.files.ContractSections(c.Request.Context(), file, userID, req.Count)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toFileResponse(file))
}

// GetMyContracts 当前用户领取的 Section
func (s *AssetService) GetMyContracts(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "unauthorized")
		return
	}

	file, ok := s.loadFile(c)
	if !ok {
		return
	}

	sections, err := s.files.GetContractedSections(c.Request.Context(), file, userID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toSectionResponses(sections))
}

// CommitSection 提交译文
func (s *AssetService) CommitSection(c *gin.Context) {
	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID, _ := middleware.GetUserID(c)
	commit, err := s.sections.Commit(c.Request.Context(), c.Param("hash"), userID, req.Text)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Created(c, toCommitResponse(commit))
}

// PublishSection 发布译文
func (s *AssetService) PublishSection(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	section, err := s.sections.Publish(c.Request.Context(), c.Param("hash"), req.CommitID)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toSectionResponse(section))
}

// loadFile resolves the :id path parameter. It writes the error response
// itself and reports false when the file cannot be loaded.
func (s *AssetService) loadFile(c *gin.Context) (*biz.File, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.HandleError(c, apperrors.New(apperrors.ErrAssetFileNotFound, id))
		return nil, false
	}

	file, err := s.files.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return nil, false
	}
	return file, true
}

// handleError 将 biz 错误映射为业务错误码，5xx 记录原因后统一输出
func (s *AssetService) handleError(c *gin.Context, err error) {
	var (
		code   int
		detail string
	)

	switch {
	case errors.Is(err, biz.ErrMergeAborted):
		code = apperrors.ErrAssetMergeAborted
	case errors.Is(err, biz.ErrFileNotSaved):
		code = apperrors.ErrAssetFileNotSaved
	case errors.Is(err, biz.ErrNoSpecifiedSection):
		code = apperrors.ErrAssetSectionMissing
	case errors.Is(err, biz.ErrFileNotFound):
		code, detail = apperrors.ErrAssetFileNotFound, c.Param("id")
	case errors.Is(err, biz.ErrAssetNotFound):
		code = apperrors.ErrAssetObjectMissing
	case errors.Is(err, biz.ErrSectionNotFound):
		code, detail = apperrors.ErrNotFound, "section not found"
	case errors.Is(err, biz.ErrSectionExists):
		code = apperrors.ErrAssetSectionExists
	case errors.Is(err, biz.ErrCommitNotFound):
		code = apperrors.ErrAssetCommitNotFound
	case errors.Is(err, biz.ErrInvalidRange):
		code, detail = apperrors.ErrAssetInvalidRange, err.Error()
	case errors.Is(err, biz.ErrSectionInvalid):
		code, detail = apperrors.ErrAssetInvalidSection, err.Error()
	case errors.Is(err, biz.ErrFileNameRequired):
		code, detail = apperrors.ErrBadRequest, err.Error()
	case errors.Is(err, biz.ErrUserRequired):
		code, detail = apperrors.ErrUnauthorized, "unauthorized"
	case errors.Is(err, biz.ErrAssetStorage):
		code = apperrors.ErrAssetStorageFailed
	default:
		code = apperrors.ErrInternalServer
	}

	appErr := apperrors.Wrap(err, code, detail)
	if apperrors.IsServerError(appErr.Code) {
		s.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}
	response.HandleError(c, appErr)
}
