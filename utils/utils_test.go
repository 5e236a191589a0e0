package utils

import (
	"testing"
)

func TestSha512String(t *testing.T) {
	if Sha512String("hello") == Sha512String("world") {
		t.Error("different inputs hashed to the same value")
	}
	if Sha512String("hello") != Sha512String("hello") {
		t.Error("same input hashed to different values")
	}
	if len(Sha512String("x")) != 128 {
		t.Errorf("hex digest length = %d, want 128", len(Sha512String("x")))
	}
}

func TestFloat32ArrayRoundTrip(t *testing.T) {
	in := []float32{0, 1, -1, 0.5, -2.25, 3.75, 1e-7, 1e7}
	out := ByteArrayToFloat32Array(Float32ArrayToByteArray(in))
	if len(out) != len(in) {
		t.Fatalf("round-trip length = %d, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("element %d: %v != %v", i, out[i], in[i])
		}
	}
}

func TestByteArrayToFloat32ArrayTruncated(t *testing.T) {
	blob := Float32ArrayToByteArray([]float32{1, 2, 3})
	out := ByteArrayToFloat32Array(blob[:len(blob)-2]) // trailing partial value dropped
	if len(out) != 2 {
		t.Fatalf("length = %d, want 2", len(out))
	}
	if out[0] != 1 || out[1] != 2 {
		t.Errorf("got %v, want [1 2]", out)
	}
}

func TestRandSalt(t *testing.T) {
	a := RandSalt(30)
	b := RandSalt(30)
	if a == b {
		t.Error("two salts are identical")
	}
	if len(a) == 0 {
		t.Error("empty salt")
	}
}
