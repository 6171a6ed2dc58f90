package cart

import "github.com/shopspring/decimal"

// 表示用の金額。小数第2位で四捨五入（0.5は0から遠い方へ）。
// 計算そのものはfloat64のまま。
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
