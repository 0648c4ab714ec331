package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once  sync.Once
	sugar *zap.SugaredLogger
)

// Init 进程级日志初始化，main 里调用一次
func Init() {
	once.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		sugar = l.Sugar()
	})
}

// L 返回全局 logger，未初始化时兜底初始化
func L() *zap.SugaredLogger {
	if sugar == nil {
		Init()
	}
	return sugar
}
