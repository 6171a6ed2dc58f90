package logger

import (
	"go.uber.org/zap"
)

// prodならJSON、それ以外は開発用の読みやすい出力
func New(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
