package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrNoURLFound          = errors.New("消息中没有找到链接")
	ErrUnsupportedPlatform = errors.New("暂不支持该平台的商品链接")
	ErrConvertFailed       = errors.New("联盟链接转换失败")
	ErrScrapeFailed        = errors.New("商品信息抓取失败")
	ErrTrackingNotFound    = errors.New("追踪记录不存在")
	ErrProductNotFound     = errors.New("商品不存在")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrNoURLFound:          BadRequest,
	ErrUnsupportedPlatform: BadRequest,
	ErrConvertFailed:       BadRequest,
	ErrScrapeFailed:        BadRequest,
	ErrTrackingNotFound:    NotFound,
	ErrProductNotFound:     NotFound,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
