package security

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-think/openssl"
)

func TestZip_压缩解压往返(t *testing.T) {
	src := []byte(`{"seq":1,"name":"board.get","msg":{}}`)
	z, err := Zip(src)
	if err != nil {
		t.Fatalf("Zip err=%v", err)
	}
	got, err := UnZip(z)
	if err != nil {
		t.Fatalf("UnZip err=%v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("往返不一致 got=%s", got)
	}
}

func TestUnZip_非法数据返回错误(t *testing.T) {
	if _, err := UnZip([]byte("not gzip")); err == nil {
		t.Fatalf("期望非法数据返回错误")
	}
}

func TestAesCBC_加解密往返(t *testing.T) {
	key := []byte("0123456789abcdef")
	src := []byte(`{"seq":2,"name":"board.drop"}`)
	enc, err := AesCBCEncrypt(src, key, key, openssl.PKCS7_PADDING)
	if err != nil {
		t.Fatalf("AesCBCEncrypt err=%v", err)
	}
	if bytes.Equal(enc, src) {
		t.Fatalf("期望密文与明文不同")
	}
	dec, err := AesCBCDecrypt(enc, key, key, openssl.PKCS7_PADDING)
	if err != nil {
		t.Fatalf("AesCBCDecrypt err=%v", err)
	}
	if !bytes.Equal(dec, src) {
		t.Fatalf("往返不一致 got=%s", dec)
	}
}

func TestAesCBC_密钥长度非法(t *testing.T) {
	if _, err := AesCBCEncrypt([]byte("x"), []byte("short"), []byte("short"), openssl.PKCS7_PADDING); !errors.Is(err, ErrAESKeySize) {
		t.Fatalf("期望 ErrAESKeySize, err=%v", err)
	}
}
