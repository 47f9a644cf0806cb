package code

// Success codes
var (
	Success         = NewSuss(200, lang{en: "Success", zh_cn: "成功"})
	SuccessNoChange = NewSuss(201, lang{en: "No change", zh_cn: "无变更"})
	Failed          = NewError(400, lang{en: "Failed", zh_cn: "失败"})
)

// Server level errors
var (
	ErrorServerInternal = NewError(10000, lang{en: "Internal server error", zh_cn: "服务内部错误"})
	ErrorInvalidParams  = NewError(10001, lang{en: "Invalid request parameters", zh_cn: "入参错误"})
	ErrorNotFound       = NewError(10002, lang{en: "Resource not found", zh_cn: "找不到资源"})
	ErrorTooManyRequest = NewError(10003, lang{en: "Too many requests", zh_cn: "请求过多"})
	ErrorTimeout        = NewError(10004, lang{en: "Request timeout", zh_cn: "请求超时"})
	ErrorDBQuery        = NewError(10005, lang{en: "Database query error", zh_cn: "数据库查询错误"})
	ErrorInvalidStorageType = NewError(10006, lang{en: "Invalid storage type", zh_cn: "无效的存储类型"})
)

// User and auth errors
var (
	ErrorNotUserAuthToken       = NewError(20001, lang{en: "Missing auth token", zh_cn: "缺少认证令牌"})
	ErrorInvalidUserAuthToken   = NewError(20002, lang{en: "Invalid auth token", zh_cn: "无效的认证令牌"})
	ErrorUserRegister           = NewError(20003, lang{en: "User registration failed", zh_cn: "用户注册失败"})
	ErrorUserRegisterIsDisable  = NewError(20004, lang{en: "User registration is disabled", zh_cn: "用户注册已关闭"})
	ErrorUserAlreadyExists      = NewError(20005, lang{en: "Username already exists", zh_cn: "用户名已存在"})
	ErrorUserEmailAlreadyExists = NewError(20006, lang{en: "Email already registered", zh_cn: "邮箱已被注册"})
	ErrorUserNotExist           = NewError(20007, lang{en: "User does not exist", zh_cn: "用户不存在"})
	ErrorUserPasswordWrong      = NewError(20008, lang{en: "Wrong email or password", zh_cn: "邮箱或密码错误"})
	ErrorUserPasswordNotMatch   = NewError(20009, lang{en: "Passwords do not match", zh_cn: "两次密码不一致"})
	ErrorUserUsernameNotValid   = NewError(20010, lang{en: "Invalid username format", zh_cn: "用户名格式不正确"})
	ErrorPasswordNotValid       = NewError(20011, lang{en: "Invalid password", zh_cn: "密码无效"})
	ErrorProfileUpdateFailed    = NewError(20012, lang{en: "Profile update failed", zh_cn: "资料更新失败"})
)

// Note errors
var (
	ErrorNoteNotExist     = NewError(30001, lang{en: "Note does not exist", zh_cn: "笔记不存在"})
	ErrorNoteCreateFailed = NewError(30002, lang{en: "Note creation failed", zh_cn: "笔记创建失败"})
	ErrorNoteUpdateFailed = NewError(30003, lang{en: "Note update failed", zh_cn: "笔记更新失败"})
	ErrorNoteDeleteFailed = NewError(30004, lang{en: "Note deletion failed", zh_cn: "笔记删除失败"})
	ErrorNoteNotOwner     = NewError(30005, lang{en: "Note belongs to another user", zh_cn: "无权操作他人笔记"})
	ErrorNoteShareFailed  = NewError(30006, lang{en: "Note sharing failed", zh_cn: "笔记分享失败"})
	ErrorNoteNotShared    = NewError(30007, lang{en: "Note is not shared", zh_cn: "笔记未分享"})
)

// Social errors
var (
	ErrorTagAddFailed        = NewError(31001, lang{en: "Tag add failed", zh_cn: "标签添加失败"})
	ErrorTagRemoveFailed     = NewError(31002, lang{en: "Tag remove failed", zh_cn: "标签删除失败"})
	ErrorCommentAddFailed    = NewError(31003, lang{en: "Comment add failed", zh_cn: "评论添加失败"})
	ErrorCommentDeleteFailed = NewError(31004, lang{en: "Comment delete failed", zh_cn: "评论删除失败"})
	ErrorCommentNotOwner     = NewError(31005, lang{en: "Comment belongs to another user", zh_cn: "无权删除他人评论"})
	ErrorLikeToggleFailed    = NewError(31006, lang{en: "Like toggle failed", zh_cn: "点赞操作失败"})
)

// Collection errors
var (
	ErrorCollectionNotExist     = NewError(32001, lang{en: "Collection does not exist", zh_cn: "收藏夹不存在"})
	ErrorCollectionCreateFailed = NewError(32002, lang{en: "Collection creation failed", zh_cn: "收藏夹创建失败"})
	ErrorCollectionUpdateFailed = NewError(32003, lang{en: "Collection update failed", zh_cn: "收藏夹更新失败"})
	ErrorCollectionDeleteFailed = NewError(32004, lang{en: "Collection deletion failed", zh_cn: "收藏夹删除失败"})
	ErrorCollectionNoteFailed   = NewError(32005, lang{en: "Collection membership change failed", zh_cn: "收藏夹笔记变更失败"})
)

// Upload errors
var (
	ErrorUploadFileFailed  = NewError(33001, lang{en: "File upload failed", zh_cn: "文件上传失败"})
	ErrorUploadFileInvalid = NewError(33002, lang{en: "Invalid upload file", zh_cn: "上传文件无效"})
	ErrorFileDeleteFailed  = NewError(33003, lang{en: "File deletion failed", zh_cn: "文件删除失败"})
)
