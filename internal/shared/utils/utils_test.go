package utils

import (
	"testing"
	"time"
)

func TestIDGen_单调递增且唯一(t *testing.T) {
	g, err := NewIDGen(3)
	if err != nil {
		t.Fatalf("NewIDGen err=%v", err)
	}
	seen := make(map[int64]struct{})
	var last int64
	for i := 0; i < 10000; i++ {
		id := g.Next()
		if id <= last {
			t.Fatalf("id 未递增 last=%d id=%d", last, id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("id 重复 %d", id)
		}
		seen[id] = struct{}{}
		last = id
	}
}

func TestIDGen_时钟回拨不回退(t *testing.T) {
	g, _ := NewIDGen(1)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return base }
	a := g.Next()
	g.now = func() time.Time { return base.Add(-time.Second) }
	b := g.Next()
	if b <= a {
		t.Fatalf("回拨后 id 回退 a=%d b=%d", a, b)
	}
}

func TestNewIDGen_节点越界(t *testing.T) {
	if _, err := NewIDGen(-1); err == nil {
		t.Fatalf("期望 -1 越界")
	}
	if _, err := NewIDGen(maxNodeID + 1); err == nil {
		t.Fatalf("期望 %d 越界", maxNodeID+1)
	}
}

func TestRandSeq_长度与字符集(t *testing.T) {
	s := RandSeq(16)
	if len(s) != 16 {
		t.Fatalf("期望长度 16, got=%d", len(s))
	}
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			t.Fatalf("非法字符 %q", c)
		}
	}
}
