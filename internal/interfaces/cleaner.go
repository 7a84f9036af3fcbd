// Package interfaces
package interfaces

import (
	"github.com/codebrew-airways/skybridge/internal/interfaces/global"
)

type CleanerInterface interface {
	Init()
	Add(callable global.Callable)
	Clean()
}
