package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldEntryID 笔记条目 ID 字段
	FieldEntryID = "entryId"

	// FieldProjectID 项目 ID 字段
	FieldProjectID = "projectId"

	// FieldVersionID 版本 ID 字段
	FieldVersionID = "versionId"

	// FieldProvider 联合登录提供方字段
	FieldProvider = "provider"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"
)
