package cart

import "errors"

// 商品IDが空のまま追加しようとした
var ErrInvalidProduct = errors.New("invalid product")

type State string

const (
	StateEmpty     State = "EMPTY"
	StatePopulated State = "POPULATED"
)

// カートが必要とする商品情報だけ持つ。
type Product struct {
	ID       string  `json:"product_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image_url"`
	SellerID string  `json:"seller_id"`
}

// カートの明細（1商品につき1つ）
type Entry struct {
	Product
	Quantity int `json:"quantity"`
}

func (e Entry) Subtotal() float64 {
	return e.Price * float64(e.Quantity)
}

// Cart はセッション単位のカート。
// 同じ商品IDの明細は必ず1つだけ、追加順を保つ。
// 並行アクセスの制御は持ち主（session）側で行う。
type Cart struct {
	entries []Entry
}

func New() *Cart {
	return &Cart{}
}

// 同一商品は数量+1、なければ数量1で末尾に追加。
func (c *Cart) Add(p Product) error {
	if p.ID == "" {
		return ErrInvalidProduct
	}

	if i := c.indexOf(p.ID); i >= 0 {
		c.entries[i].Quantity++
		return nil
	}

	c.entries = append(c.entries, Entry{Product: p, Quantity: 1})
	return nil
}

// 数量の置き換え。0以下なら明細ごと削除、なければ何もしない。
func (c *Cart) UpdateQuantity(productID string, qty int) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}
	if qty <= 0 {
		c.removeAt(i)
		return
	}
	c.entries[i].Quantity = qty
}

// 明細削除（なくてもエラーにしない）
func (c *Cart) Remove(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
}

func (c *Cart) Clear() {
	c.entries = nil
}

// 単価×数量の合計。毎回計算し直す。
func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.entries {
		total += e.Subtotal()
	}
	return total
}

func (c *Cart) State() State {
	if len(c.entries) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

func (c *Cart) Len() int {
	return len(c.entries)
}

func (c *Cart) Contains(productID string) bool {
	return c.indexOf(productID) >= 0
}

// 明細の数量（なければ0）
func (c *Cart) Quantity(productID string) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}

// 呼び出し側が書き換えても中身に影響しないようコピーを返す
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) indexOf(productID string) int {
	for i, e := range c.entries {
		if e.ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.entries = append(c.entries[:i], c.entries[i+1:]...)
}
