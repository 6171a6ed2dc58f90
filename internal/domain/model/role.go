package model

import "strings"

// 会員登録時に決まり、以後は変わらない
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// ロールごとに許される画面・操作
type Capability string

const (
	CapShop         Capability = "shop"
	CapCart         Capability = "cart"
	CapMyOrders     Capability = "my_orders"
	CapDashboard    Capability = "dashboard"
	CapSellerOrders Capability = "seller_orders"
)

// 表示順もこの順
var roleCapabilities = map[Role][]Capability{
	RoleBuyer:  {CapShop, CapCart, CapMyOrders},
	RoleSeller: {CapDashboard, CapSellerOrders},
}

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := roleCapabilities[r]
	return r, ok
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Capabilities() []Capability {
	caps := roleCapabilities[r]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}

func (r Role) Can(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}
