package response

// 业务状态码（HTTP 层统一返回 200，错误语义由状态码表达）
const (
	CodeOK           = 0
	CodeBadRequest   = 400
	CodeUnauthorized = 401
	CodeForbidden    = 403
	CodeNotFound     = 404
	CodeInternal     = 500
)
