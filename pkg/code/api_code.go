package code

import "net/http"

// 通用成功码
var (
	Success       = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
	SuccessUpdate = NewSuss(1, lang{en: "Update Success", zh_cn: "更新成功"})
	SuccessDelete = NewSuss(2, lang{en: "Delete Success", zh_cn: "删除成功"})
)

// 通用错误码
var (
	Failed               = NewError(10000000, lang{en: "Failed", zh_cn: "失败"})
	ErrorInvalidParams   = NewError(10000001, lang{en: "Invalid Params", zh_cn: "入参错误"}).HTTP(http.StatusBadRequest)
	ErrorNotFoundAPI     = NewError(10000002, lang{en: "Not Found API", zh_cn: "接口不存在"}).HTTP(http.StatusNotFound)
	ErrorTooManyRequests = NewError(10000003, lang{en: "Too Many Requests", zh_cn: "请求过多"}).HTTP(http.StatusTooManyRequests)
	ErrorServerInternal  = NewError(10000004, lang{en: "Server Internal Error", zh_cn: "服务内部错误"}).HTTP(http.StatusInternalServerError)
	ErrorDBQuery         = NewError(10000005, lang{en: "Database Query Error", zh_cn: "数据库查询错误"}).HTTP(http.StatusInternalServerError)
)

// 认证与用户错误码
var (
	ErrorNotUserAuthToken        = NewError(20000001, lang{en: "Auth Token Required", zh_cn: "需要认证 Token"}).HTTP(http.StatusUnauthorized)
	ErrorInvalidUserAuthToken    = NewError(20000002, lang{en: "Invalid Auth Token", zh_cn: "认证 Token 无效"}).HTTP(http.StatusUnauthorized)
	ErrorTokenGenerate           = NewError(20000003, lang{en: "Token Generate Failed", zh_cn: "Token 生成失败"}).HTTP(http.StatusInternalServerError)
	ErrorUserLoginPasswordFailed = NewError(20000004, lang{en: "Incorrect Username Or Password", zh_cn: "用户名或密码错误"}).HTTP(http.StatusUnauthorized)
	ErrorUserRegisterIsDisable   = NewError(20000005, lang{en: "Registration Is Disabled", zh_cn: "注册功能已关闭"}).HTTP(http.StatusForbidden)
	ErrorUserUsernameNotValid    = NewError(20000006, lang{en: "Invalid Username Format", zh_cn: "用户名格式不正确"}).HTTP(http.StatusBadRequest)
	ErrorPasswordNotValid        = NewError(20000007, lang{en: "Invalid Password", zh_cn: "密码不合法"}).HTTP(http.StatusBadRequest)
	ErrorUserAlreadyExists       = NewError(20000008, lang{en: "Username Already Exists", zh_cn: "用户名已存在"}).HTTP(http.StatusBadRequest)
	ErrorUserEmailAlreadyExists  = NewError(20000009, lang{en: "Email Already Exists", zh_cn: "邮箱已存在"}).HTTP(http.StatusBadRequest)
	ErrorUserRegister            = NewError(20000010, lang{en: "User Register Failed", zh_cn: "用户注册失败"}).HTTP(http.StatusInternalServerError)
	ErrorUserNotFound            = NewError(20000011, lang{en: "User Not Found", zh_cn: "用户不存在"}).HTTP(http.StatusNotFound)
	ErrorUserUpdate              = NewError(20000012, lang{en: "User Update Failed", zh_cn: "用户更新失败"}).HTTP(http.StatusInternalServerError)
	ErrorUserDelete              = NewError(20000013, lang{en: "User Delete Failed", zh_cn: "用户删除失败"}).HTTP(http.StatusInternalServerError)
	ErrorOAuthLoginFailed        = NewError(20000014, lang{en: "Federated Login Failed", zh_cn: "联合登录失败"}).HTTP(http.StatusUnauthorized)
	ErrorExpiredUserAuthToken    = NewError(20000015, lang{en: "Auth Token Expired", zh_cn: "认证 Token 已过期"}).HTTP(http.StatusUnauthorized)
)

// 项目与协作者错误码
var (
	// ErrorNotFound 统一的资源不存在响应
	// 无权访问的资源也返回该码，避免泄露资源是否存在
	ErrorNotFound                  = NewError(30000001, lang{en: "Resource Not Found", zh_cn: "资源不存在"}).HTTP(http.StatusNotFound)
	ErrorProjectNotOwner           = NewError(30000002, lang{en: "Only The Project Owner Can Do This", zh_cn: "仅项目所有者可执行此操作"}).HTTP(http.StatusForbidden)
	ErrorCollaboratorUnknownUser   = NewError(30000003, lang{en: "No User With That Email", zh_cn: "该邮箱没有对应用户"}).HTTP(http.StatusNotFound)
	ErrorCollaboratorSelfReference = NewError(30000004, lang{en: "Cannot Add Yourself As Collaborator", zh_cn: "不能将自己添加为协作者"}).HTTP(http.StatusBadRequest)
	ErrorProjectCreate             = NewError(30000005, lang{en: "Project Create Failed", zh_cn: "项目创建失败"}).HTTP(http.StatusInternalServerError)
)

// 条目与版本错误码
var (
	ErrorEntryCreate  = NewError(40000001, lang{en: "Entry Create Failed", zh_cn: "条目创建失败"}).HTTP(http.StatusInternalServerError)
	ErrorEntryUpdate  = NewError(40000002, lang{en: "Entry Update Failed", zh_cn: "条目更新失败"}).HTTP(http.StatusInternalServerError)
	ErrorEntryDelete  = NewError(40000003, lang{en: "Entry Delete Failed", zh_cn: "条目删除失败"}).HTTP(http.StatusInternalServerError)
	ErrorEntryRestore = NewError(40000004, lang{en: "Entry Restore Failed", zh_cn: "条目恢复失败"}).HTTP(http.StatusInternalServerError)
	// ErrorVersionNotFound 恢复目标版本不存在
	ErrorVersionNotFound = NewError(40000005, lang{en: "Version Not Found", zh_cn: "版本不存在"}).HTTP(http.StatusNotFound)
)

// 模板错误码
var (
	ErrorTemplateCreate = NewError(50000001, lang{en: "Template Create Failed", zh_cn: "模板创建失败"}).HTTP(http.StatusInternalServerError)
	ErrorTemplateUpdate = NewError(50000002, lang{en: "Template Update Failed", zh_cn: "模板更新失败"}).HTTP(http.StatusInternalServerError)
	ErrorTemplateDelete = NewError(50000003, lang{en: "Template Delete Failed", zh_cn: "模板删除失败"}).HTTP(http.StatusInternalServerError)
)
