// Package validator 提供 gin 绑定使用的自定义验证器
package validator

import (
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
	"github.com/labnote/labnote-service/pkg/util"
)

// CustomValidator 实现 binding.StructValidator 接口
// 使用 json 标签作为错误字段名
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

// NewCustomValidator 创建 CustomValidator 实例
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

// ValidateStruct 校验结构体
func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil
	}
	v.lazyinit()
	return v.validate.Struct(obj)
}

// Engine 获取底层 validator 引擎
func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

// RegisterCustom 注册自定义校验规则
func RegisterCustom() {
	if v, ok := binding.Validator.Engine().(*val.Validate); ok {
		// username 规则：字母、数字、下划线，长度 3-20
		_ = v.RegisterValidation("username", func(fl val.FieldLevel) bool {
			return util.IsValidUsername(fl.Field().String())
		})
	}
}

// 确保 CustomValidator 实现了 binding.StructValidator 接口
var _ binding.StructValidator = (*CustomValidator)(nil)
