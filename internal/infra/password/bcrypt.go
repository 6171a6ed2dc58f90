package password

import "golang.org/x/crypto/bcrypt"

type BcryptHasher struct {
	cost int
}

// costが範囲外ならbcrypt.DefaultCost
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type BcryptVerifier struct{}

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (v *BcryptVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
