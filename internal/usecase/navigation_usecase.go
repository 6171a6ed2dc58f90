package usecase

import (
	"storefront/internal/domain/model"
	"storefront/internal/session"
)

type NavLink struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

var capabilityLinks = map[model.Capability]NavLink{
	model.CapShop:         {Key: "shop", Label: "Shop", Path: "/products"},
	model.CapCart:         {Key: "cart", Label: "Cart", Path: "/cart"},
	model.CapMyOrders:     {Key: "my_orders", Label: "My Orders", Path: "/orders"},
	model.CapDashboard:    {Key: "dashboard", Label: "Dashboard", Path: "/seller/products"},
	model.CapSellerOrders: {Key: "seller_orders", Label: "Orders", Path: "/seller/orders"},
}

var (
	signInLink  = NavLink{Key: "signin", Label: "Sign In", Path: "/auth/signin"}
	signUpLink  = NavLink{Key: "signup", Label: "Sign Up", Path: "/auth/signup"}
	signOutLink = NavLink{Key: "signout", Label: "Sign Out", Path: "/auth/signout"}
)

// 未ログインならサインイン/サインアップだけ。
// ログイン済みならセッションの権限の順にリンクを並べる。
func BuildNavigation(sess *session.Session) []NavLink {
	if sess == nil {
		return []NavLink{signInLink, signUpLink}
	}

	caps := sess.Capabilities()
	links := make([]NavLink, 0, len(caps)+1)
	for _, c := range caps {
		if l, ok := capabilityLinks[c]; ok {
			links = append(links, l)
		}
	}
	return append(links, signOutLink)
}
