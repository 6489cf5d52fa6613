package biz

import "errors"

var (
	// ErrNoSpecifiedSection 文件引用的 hash 找不到对应 Section（数据一致性被破坏）
	ErrNoSpecifiedSection = errors.New("NO_SPECIFIED_SECTION")

	// ErrFileNotFound 文件不存在
	ErrFileNotFound = errors.New("file not found")

	// ErrFileNotSaved 文件持久化失败（例如同名并发创建）
	ErrFileNotSaved = errors.New("file not saved")

	// ErrFileNameRequired 文件名必填
	ErrFileNameRequired = errors.New("file name is required")

	// ErrSectionNotFound Section 不存在
	ErrSectionNotFound = errors.New("section not found")

	// ErrSectionExists 相同 hash 的 Section 已存在
	ErrSectionExists = errors.New("section already exists")

	// ErrSectionInvalid Section 输入缺少原文
	ErrSectionInvalid = errors.New("section origin text is required")

	// ErrCommitNotFound 提交记录不存在
	ErrCommitNotFound = errors.New("commit not found")

	// ErrMergeAborted 合并过程中创建 Section 失败，合并提前终止
	ErrMergeAborted = errors.New("section merge aborted")

	// ErrInvalidRange 分页参数非法
	ErrInvalidRange = errors.New("start and count must be non-negative")

	// ErrUserRequired 缺少用户标识
	ErrUserRequired = errors.New("user id is required")

	// ErrAssetStorage 资源文件存储失败
	ErrAssetStorage = errors.New("asset storage failed")

	// ErrAssetNotFound 文件记录的资源路径在对象存储中不存在
	ErrAssetNotFound = errors.New("asset not found")
)
