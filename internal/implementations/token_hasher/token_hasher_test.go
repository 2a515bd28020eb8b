package tokenhasher

import (
	"fmt"
	"testing"
)

func TestTokenValid(t *testing.T) {
	type testcase struct {
		ix     int
		secret string
		cost   int
		token  string
	}
	cases := []testcase{
		{ix: 1, secret: "test", cost: 5, token: "test"},
		{ix: 2, secret: "", cost: 5, token: ""},
		{ix: 3, secret: "a", cost: 7, token: "token token"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			h := NewBcrypt(c.secret, c.cost)
			hash, err := h.HashToken(c.token)
			if err != nil {
				t.Fatalf("could not hash token: %v, %v", c.token, err)
			}
			if hash == "" {
				t.Fatal("hash must not be empty")
			}
			if !h.ValidateToken(c.token, hash) {
				t.Fatalf("token check failed: %v", c.token)
			}
		})
	}
}

func TestTokenInvalid(t *testing.T) {
	type testcase struct {
		ix            int
		secretToHash  string
		secretToCheck string
		tokenToHash   string
		tokenToCheck  string
	}
	cases := []testcase{
		{ix: 1, secretToHash: "test", secretToCheck: "test", tokenToHash: "test", tokenToCheck: "test "},
		{ix: 2, secretToHash: "test", secretToCheck: "test ", tokenToHash: "test", tokenToCheck: "test"},
		{ix: 3, secretToHash: "", secretToCheck: "", tokenToHash: "", tokenToCheck: " "},
	}
	for _, c := range cases {
		t.Run(fmt.Sprint(c.ix), func(t *testing.T) {
			hash, err := NewBcrypt(c.secretToHash, 5).HashToken(c.tokenToHash)
			if err != nil {
				t.Fatalf("could not hash token: %v, %v", c.tokenToHash, err)
			}
			if NewBcrypt(c.secretToCheck, 5).ValidateToken(c.tokenToCheck, hash) {
				t.Fatalf("token check passed: %v, %v", c.tokenToHash, c.tokenToCheck)
			}
		})
	}
}
