package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateDTO 结构体校验，把所有失败字段合并进一条错误信息
func ValidateDTO(dto any) error {
	err := validate.Struct(dto)
	if err == nil {
		return nil
	}

	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return err
	}

	parts := make([]string, 0, len(vErrs))
	for _, fe := range vErrs {
		parts = append(parts, fmt.Sprintf("字段 [%s] 不满足规则 [%s]", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, "; "))
}
