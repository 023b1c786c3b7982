package ports

import "errors"

// 定義 Ports 層級通用的錯誤
var (
	// ErrKeyNotFound Store 中查無指定鍵
	ErrKeyNotFound = errors.New("key not found")
)
