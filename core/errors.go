package core

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - "无信号"条件（未知用户、空档案、零向量查询）返回空结果，不返回错误
//   - 错误保留给契约违反（维度不匹配、快照缺字段）与基础设施故障
//   - 提供错误代码（Code）和模块名（Module），便于上层分类处理
type DomainError struct {
	Module  string // 模块名称（如 "store", "vector", "affinity"）
	Code    string // 错误代码（如 "NOT_FOUND", "INVALID_INPUT"）
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"      // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"  // 操作不支持
	ErrorCodeUnavailable   = "UNAVAILABLE"    // 服务不可用
	ErrorCodeInvalidInput  = "INVALID_INPUT"  // 输入无效（契约违反）
	ErrorCodeInternalError = "INTERNAL_ERROR" // 内部错误
)

// 模块名称常量
const (
	ModuleStore    = "store"    // 存储模块
	ModuleFeature  = "feature"  // 特征模块
	ModuleVector   = "vector"   // 向量索引模块
	ModuleAffinity = "affinity" // 用户-类目亲和度模块
	ModuleCorpus   = "corpus"   // 文本语料模块
	ModuleEmbed    = "embed"    // 嵌入服务模块
)

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsInvalidInput 检查错误是否为契约违反（INVALID_INPUT）。
func IsInvalidInput(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidInput
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}
