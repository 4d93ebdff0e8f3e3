package dto

import "github.com/labnote/labnote-service/pkg/timex"

// EntryCreateRequest 创建条目请求参数
type EntryCreateRequest struct {
	Title      string   `json:"title" form:"title" binding:"required,max=256"`
	Content    string   `json:"content" form:"content"`
	Researcher string   `json:"researcher" form:"researcher" binding:"max=128"`
	Tags       []string `json:"tags" form:"tags"`
	Attachment string   `json:"attachment" form:"attachment" binding:"max=512"`
	ProjectID  int64    `json:"projectId" form:"projectId" binding:"min=0"`
}

// EntryUpdateRequest 修改条目请求参数
// 归属与作者不可修改，仅内容类字段可覆盖
type EntryUpdateRequest struct {
	Title      string   `json:"title" form:"title" binding:"required,max=256"`
	Content    string   `json:"content" form:"content"`
	Researcher string   `json:"researcher" form:"researcher" binding:"max=128"`
	Tags       []string `json:"tags" form:"tags"`
	Attachment string   `json:"attachment" form:"attachment" binding:"max=512"`
}

// EntryListRequest 条目列表请求参数
// projectId 可为 all、uncategorized 或项目ID
type EntryListRequest struct {
	ProjectID string `json:"projectId" form:"projectId" binding:""`
}

// EntryIDRequest 条目路由参数
type EntryIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// EntryVersionIDRequest 条目版本路由参数
type EntryVersionIDRequest struct {
	ID        int64 `uri:"id" binding:"required,min=1"`
	VersionID int64 `uri:"versionId" binding:"required,min=1"`
}

// EntryDTO 条目数据传输对象
type EntryDTO struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Researcher string     `json:"researcher"`
	Tags       []string   `json:"tags"`
	Attachment string     `json:"attachment"`
	ProjectID  int64      `json:"projectId"`
	AuthorUID  int64      `json:"authorUid"`
	UpdatedAt  timex.Time `json:"updatedAt"`
	CreatedAt  timex.Time `json:"createdAt"`
}

// EntryVersionDTO 条目版本数据传输对象
type EntryVersionDTO struct {
	ID         int64      `json:"id"`
	EntryID    int64      `json:"entryId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	Researcher string     `json:"researcher"`
	Tags       []string   `json:"tags"`
	ModifiedBy int64      `json:"modifiedBy"`
	SnapshotAt timex.Time `json:"snapshotAt"`
}

// EntryExportDTO 条目 Markdown 导出结果
type EntryExportDTO struct {
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}
