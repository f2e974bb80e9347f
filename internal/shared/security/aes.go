package security

import (
	"errors"

	"github.com/go-think/openssl"
)

var ErrAESKeySize = errors.New("aes key must be 16, 24 or 32 bytes")

// AesCBCEncrypt 是 WS 报文加密；握手下发的 key 同时用作 iv。
func AesCBCEncrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key, iv); err != nil {
		return nil, err
	}
	return openssl.AesCBCEncrypt(src, key, iv, padding)
}

func AesCBCDecrypt(src, key, iv []byte, padding string) ([]byte, error) {
	if err := checkKey(key, iv); err != nil {
		return nil, err
	}
	return openssl.AesCBCDecrypt(src, key, iv, padding)
}

func checkKey(key, iv []byte) error {
	switch len(key) {
	case 16, 24, 32:
	default:
		return ErrAESKeySize
	}
	if len(iv) != 16 {
		return errors.New("aes iv must be 16 bytes")
	}
	return nil
}
