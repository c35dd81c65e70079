package restcountries

import "errors"

var (
	errEmptyBody = errors.New("响应体为空")
	errNotObject = errors.New("响应既不是对象也不是数组")
)
