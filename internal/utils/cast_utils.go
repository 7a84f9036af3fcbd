package utils

import "strconv"

func StrToInt(str string, defaultValue int) int {
	result, err := strconv.Atoi(str)
	if err != nil {
		return defaultValue
	}
	return result
}

func StrToInt64(str string, defaultValue int64) int64 {
	result, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return defaultValue
	}
	return result
}
