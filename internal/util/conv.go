package util

import (
	"strconv"
)

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// FormatUint 题目ID在答案映射中的字符串键形式
func FormatUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
