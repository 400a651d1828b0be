package jwts

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims 管理后台令牌 Gm标记是否有销毁房间的权限
type CustomClaims struct {
	Uid string `json:"uid"`
	Gm  bool   `json:"gm"`
	jwt.RegisteredClaims
}

func NewClaims(uid string, gm bool, exp time.Duration) *CustomClaims {
	return &CustomClaims{
		Uid: uid,
		Gm:  gm,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(exp)),
		},
	}
}

func GenToken(claims *CustomClaims, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(token, secret string) (*CustomClaims, error) {
	claims := new(CustomClaims)
	t, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !t.Valid {
		return nil, errors.New("token not valid")
	}
	return claims, nil
}
