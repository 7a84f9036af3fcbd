// Package utils
package utils

func Find[T any](src []T, comparator func(element T) bool) (T, bool) {
	for _, v := range src {
		if comparator(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func Filter[T any](src []T, filter func(element T) bool) (result []T) {
	result = make([]T, 0, len(src))
	for _, v := range src {
		if filter(v) {
			result = append(result, v)
		}
	}
	return
}

func ForEach[T any](src []T, callback func(element T)) {
	for _, v := range src {
		callback(v)
	}
}

func ReverseForEach[T any](src []T, callback func(idx int, element T)) {
	for i := len(src) - 1; i >= 0; i-- {
		callback(i, src[i])
	}
}
